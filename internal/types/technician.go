package types

import (
  "time"

  "github.com/google/uuid"
)

type FieldTechnician struct {
  ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name         string    `gorm:"not null;column:nome" json:"nome"`
  Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  PasswordHash string    `gorm:"not null;column:hash_senha" json:"-"`
  Active       bool      `gorm:"not null;default:true;column:ativo" json:"ativo"`
  CreatedAt    time.Time `gorm:"not null;default:now();column:data_criacao" json:"data_criacao"`
}

func (FieldTechnician) TableName() string {
  return "tecnicos_campo"
}

func (t *FieldTechnician) Principal() *Principal {
  return &Principal{ID: t.ID, Name: t.Name, Email: t.Email, Role: RoleTechnician}
}
