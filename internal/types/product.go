package types

import (
  "time"

  "github.com/google/uuid"
)

// FinishedProduct is a manufactured item ("produto acabado") a factory team
// derived from a single SawnLot.
type FinishedProduct struct {
  ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  CustomID        string    `gorm:"uniqueIndex;not null;column:id_lote_custom" json:"id_lote_custom"`
  SawnLotID       uuid.UUID `gorm:"type:uuid;not null;index;column:id_lote_serrado_origem" json:"id_lote_serrado_origem"`
  FactoryID       uuid.UUID `gorm:"type:uuid;not null;index;column:id_equipe_fabrica" json:"id_equipe_fabrica"`
  SKU             string    `gorm:"not null;column:sku_produto" json:"sku_produto"`
  Name            string    `gorm:"not null;column:nome_produto" json:"nome_produto"`
  ManufacturedAt  time.Time `gorm:"not null;default:now();column:data_hora_fabricacao" json:"data_hora_fabricacao"`
  FinishingNotes  *string   `gorm:"column:observacoes_acabamento" json:"observacoes_acabamento,omitempty"`
  TraceabilityURL string    `gorm:"not null;column:url_rastreabilidade" json:"url_rastreabilidade"`
}

func (FinishedProduct) TableName() string {
  return "produtos_acabados"
}
