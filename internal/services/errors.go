package services

import (
  "errors"
  "fmt"

  "github.com/shopspring/decimal"
)

var (
  // ErrInvalidCredentials covers both an unknown identifier and a wrong
  // password; callers must not be able to tell the two apart.
  ErrInvalidCredentials = errors.New("email ou senha incorretos")
  ErrNotFound           = errors.New("not found")
  ErrForbidden          = errors.New("forbidden")
  // ErrMirrorUnavailable means the chain mirror is not configured.
  ErrMirrorUnavailable = errors.New("blockchain mirror not configured")
)

// VolumeExceededError rejects a sawn-lot creation whose output volume is
// larger than what remains of the origin raw lot.
type VolumeExceededError struct {
  Requested decimal.Decimal
  Available decimal.Decimal
}

func (e *VolumeExceededError) Error() string {
  return fmt.Sprintf("volume solicitado %s m3 excede o disponivel %s m3", e.Requested.String(), e.Available.String())
}
