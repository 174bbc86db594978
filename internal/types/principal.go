package types

import (
  "github.com/google/uuid"
)

type Role string

const (
  RoleTechnician Role = "tecnico_campo"
  RoleSawmill    Role = "equipe_serraria"
  RoleFactory    Role = "equipe_fabrica"
)

// Principal is the normalized descriptor for an authenticated account,
// whichever of the three credential tables it came from.
type Principal struct {
  ID    uuid.UUID `json:"id"`
  Name  string    `json:"nome"`
  Email string    `json:"email"`
  Role  Role      `json:"role"`
}
