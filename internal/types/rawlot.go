package types

import (
  "time"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/datatypes"
)

func init() {
  // Volume and coordinate fields must serialize as JSON numbers, not strings.
  decimal.MarshalJSONWithoutQuotes = true
}

// RawLot is a harvested batch of logs ("lote de tora") registered in the
// field by a technician. Rows are append-only; there is no update or delete.
type RawLot struct {
  ID                uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  CustomID          string          `gorm:"uniqueIndex;not null;column:id_lote_custom" json:"id_lote_custom"`
  TechnicianID      uuid.UUID       `gorm:"type:uuid;not null;index;column:id_tecnico_campo" json:"id_tecnico_campo"`
  RegisteredAt      time.Time       `gorm:"not null;default:now();column:data_hora_registro" json:"data_hora_registro"`
  Latitude          decimal.Decimal `gorm:"type:decimal(10,8);not null;column:coordenadas_gps_lat" json:"coordenadas_gps_lat"`
  Longitude         decimal.Decimal `gorm:"type:decimal(11,8);not null;column:coordenadas_gps_lon" json:"coordenadas_gps_lon"`
  PermitNumber      string          `gorm:"not null;column:numero_dof" json:"numero_dof"`
  LicenseNumber     string          `gorm:"not null;column:numero_licenca_ambiental" json:"numero_licenca_ambiental"`
  SpeciesCommon     *string         `gorm:"column:especie_madeira_popular" json:"especie_madeira_popular,omitempty"`
  SpeciesScientific *string         `gorm:"column:especie_madeira_cientifico" json:"especie_madeira_cientifico,omitempty"`
  EstimatedVolumeM3 decimal.Decimal `gorm:"type:decimal(10,2);not null;column:volume_estimado_m3" json:"volume_estimado_m3"`
  EvidencePhotos    datatypes.JSON  `gorm:"type:jsonb;column:fotos_evidencia" json:"fotos_evidencia,omitempty"`
}

func (RawLot) TableName() string {
  return "lotes_tora"
}
