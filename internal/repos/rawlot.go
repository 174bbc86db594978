package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type RawLotRepo interface {
  Create(ctx context.Context, tx *gorm.DB, lots []*types.RawLot) ([]*types.RawLot, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RawLot, error)
  // GetByIDForUpdate locks the row for the duration of the transaction so the
  // volume-conservation check cannot race a concurrent sawn-lot creation.
  GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RawLot, error)
  GetByCustomID(ctx context.Context, tx *gorm.DB, customID string) (*types.RawLot, error)
  ListAll(ctx context.Context, tx *gorm.DB) ([]*types.RawLot, error)
  ListByTechnician(ctx context.Context, tx *gorm.DB, technicianID uuid.UUID) ([]*types.RawLot, error)
  CountByCustomIDPrefix(ctx context.Context, tx *gorm.DB, prefix string) (int64, error)
}

type rawLotRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRawLotRepo(db *gorm.DB, baseLog *logger.Logger) RawLotRepo {
  repoLog := baseLog.With("repo", "RawLotRepo")
  return &rawLotRepo{db: db, log: repoLog}
}

func (rr *rawLotRepo) Create(ctx context.Context, tx *gorm.DB, lots []*types.RawLot) ([]*types.RawLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  if len(lots) == 0 {
    return []*types.RawLot{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&lots).Error; err != nil {
    return nil, err
  }
  return lots, nil
}

func (rr *rawLotRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RawLot, error) {
  return rr.getByID(ctx, tx, id, false)
}

func (rr *rawLotRepo) GetByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RawLot, error) {
  return rr.getByID(ctx, tx, id, true)
}

func (rr *rawLotRepo) getByID(ctx context.Context, tx *gorm.DB, id uuid.UUID, forUpdate bool) (*types.RawLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  query := transaction.WithContext(ctx)
  if forUpdate {
    query = query.Clauses(clause.Locking{Strength: "UPDATE"})
  }
  var results []*types.RawLot
  if err := query.
    Where("id = ?", id).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (rr *rawLotRepo) GetByCustomID(ctx context.Context, tx *gorm.DB, customID string) (*types.RawLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.RawLot
  if err := transaction.WithContext(ctx).
    Where("id_lote_custom = ?", customID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (rr *rawLotRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.RawLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.RawLot
  if err := transaction.WithContext(ctx).
    Order("data_hora_registro DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *rawLotRepo) ListByTechnician(ctx context.Context, tx *gorm.DB, technicianID uuid.UUID) ([]*types.RawLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var results []*types.RawLot
  if err := transaction.WithContext(ctx).
    Where("id_tecnico_campo = ?", technicianID).
    Order("data_hora_registro DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (rr *rawLotRepo) CountByCustomIDPrefix(ctx context.Context, tx *gorm.DB, prefix string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = rr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.RawLot{}).
    Where("id_lote_custom LIKE ?", prefix+"%").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
