package services

import (
  "fmt"
  "strconv"
  "strings"
  "time"
)

// Custom-id prefixes per entity kind. The full id is
// "<PREFIX>-<YYYYMMDD>-<NNN>", sequence zero-padded to 3, 1-based, scoped per
// calendar day. Uniqueness comes from the date+number pair.
const (
  PrefixRawLot  = "TORA"
  PrefixSawnLot = "SERR"
  PrefixProduct = "PROD"
)

func DateKey(t time.Time) string {
  return t.Format("20060102")
}

// DayPrefix returns the per-day id prefix ("TORA-20240101") used both for the
// sequence advisory lock and for the count query.
func DayPrefix(prefix string, t time.Time) string {
  return fmt.Sprintf("%s-%s", prefix, DateKey(t))
}

func FormatCustomID(prefix string, t time.Time, sequence int64) string {
  return fmt.Sprintf("%s-%03d", DayPrefix(prefix, t), sequence)
}

// ParseCustomID splits a custom id into its prefix, date key and sequence.
func ParseCustomID(customID string) (prefix string, dateKey string, sequence int, err error) {
  parts := strings.Split(customID, "-")
  if len(parts) != 3 {
    return "", "", 0, fmt.Errorf("malformed custom id %q", customID)
  }
  prefix = parts[0]
  switch prefix {
  case PrefixRawLot, PrefixSawnLot, PrefixProduct:
  default:
    return "", "", 0, fmt.Errorf("unknown custom id prefix %q", prefix)
  }
  dateKey = parts[1]
  if _, perr := time.Parse("20060102", dateKey); perr != nil {
    return "", "", 0, fmt.Errorf("malformed date in custom id %q", customID)
  }
  sequence, serr := strconv.Atoi(parts[2])
  if serr != nil || sequence < 1 {
    return "", "", 0, fmt.Errorf("malformed sequence in custom id %q", customID)
  }
  return prefix, dateKey, sequence, nil
}
