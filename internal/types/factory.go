package types

import (
  "time"

  "github.com/google/uuid"
)

type FactoryTeam struct {
  ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name         string    `gorm:"not null;column:nome" json:"nome"`
  Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  PasswordHash string    `gorm:"not null;column:hash_senha" json:"-"`
  Active       bool      `gorm:"not null;default:true;column:ativo" json:"ativo"`
  CreatedAt    time.Time `gorm:"not null;default:now();column:data_criacao" json:"data_criacao"`
}

func (FactoryTeam) TableName() string {
  return "equipes_fabrica"
}

func (f *FactoryTeam) Principal() *Principal {
  return &Principal{ID: f.ID, Name: f.Name, Email: f.Email, Role: RoleFactory}
}
