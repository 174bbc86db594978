package types

import (
  "time"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
)

// SawnLot is the sawn output ("lote serrado") a sawmill team produced from a
// single RawLot. The sum of OutputVolumeM3 across the lots referencing one
// RawLot never exceeds that RawLot's estimated volume.
type SawnLot struct {
  ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  CustomID         string          `gorm:"uniqueIndex;not null;column:id_lote_custom" json:"id_lote_custom"`
  RawLotID         uuid.UUID       `gorm:"type:uuid;not null;index;column:id_lote_tora_origem" json:"id_lote_tora_origem"`
  SawmillID        uuid.UUID       `gorm:"type:uuid;not null;index;column:id_equipe_serraria" json:"id_equipe_serraria"`
  RawLotReceivedAt time.Time       `gorm:"not null;column:data_recebimento_tora" json:"data_recebimento_tora"`
  ProcessedAt      time.Time       `gorm:"not null;default:now();column:data_hora_processamento" json:"data_hora_processamento"`
  OutputVolumeM3   decimal.Decimal `gorm:"type:decimal(10,2);not null;column:volume_saida_m3" json:"volume_saida_m3"`
  ProductType      *string         `gorm:"column:tipo_produto" json:"tipo_produto,omitempty"`
  Dimensions       *string         `gorm:"column:dimensoes" json:"dimensoes,omitempty"`
  TreatmentNotes   *string         `gorm:"column:observacoes_tratamento" json:"observacoes_tratamento,omitempty"`
}

func (SawnLot) TableName() string {
  return "lotes_serrados"
}
