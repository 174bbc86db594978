package types

import (
  "time"

  "github.com/google/uuid"
)

type SawmillTeam struct {
  ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Name         string    `gorm:"not null;column:nome" json:"nome"`
  Email        string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
  PasswordHash string    `gorm:"not null;column:hash_senha" json:"-"`
  Active       bool      `gorm:"not null;default:true;column:ativo" json:"ativo"`
  CreatedAt    time.Time `gorm:"not null;default:now();column:data_criacao" json:"data_criacao"`
}

func (SawmillTeam) TableName() string {
  return "equipes_serraria"
}

func (s *SawmillTeam) Principal() *Principal {
  return &Principal{ID: s.ID, Name: s.Name, Email: s.Email, Role: RoleSawmill}
}
