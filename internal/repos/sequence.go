package repos

import (
  "context"

  "gorm.io/gorm"
)

// LockDaySequence takes a Postgres advisory transaction lock keyed on the
// day-scoped custom-id prefix (e.g. "TORA-20240101"). Held until the
// surrounding transaction commits or rolls back, it serializes the
// count-then-insert sequence assignment so two same-day creations of the same
// entity kind cannot compute the same sequence number. Must be called inside
// a transaction.
func LockDaySequence(ctx context.Context, tx *gorm.DB, key string) error {
  return tx.WithContext(ctx).
    Exec(`SELECT pg_advisory_xact_lock(hashtext(?))`, key).Error
}
