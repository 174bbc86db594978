package types

import (
  "time"

  "github.com/shopspring/decimal"
)

// ChainView is the public trace response: a finished product and its full
// ancestry back to the raw lot. The origin links are tolerated as null when a
// referenced row is missing, so a partially broken chain still renders.
type ChainView struct {
  Product *ProductView `json:"produto"`
  SawnLot *SawnLotView `json:"lote_serrado"`
  RawLot  *RawLotView  `json:"lote_tora"`
}

type ProductView struct {
  CustomID        string    `json:"id_custom"`
  OriginCustomID  string    `json:"id_lote_serrado_origem"`
  SKU             string    `json:"sku"`
  Name            string    `json:"nome"`
  ManufacturedAt  time.Time `json:"data_hora_fabricacao"`
  FinishingNotes  *string   `json:"observacoes_acabamento,omitempty"`
  TraceabilityURL string    `json:"url_rastreabilidade"`
}

type SawnLotView struct {
  CustomID         string          `json:"id_custom"`
  OriginCustomID   string          `json:"id_lote_tora_origem"`
  RawLotReceivedAt time.Time       `json:"data_recebimento_tora"`
  ProcessedAt      time.Time       `json:"data_hora_processamento"`
  VolumeM3         decimal.Decimal `json:"volume_m3"`
  ProductType      *string         `json:"tipo_produto,omitempty"`
  Dimensions       *string         `json:"dimensoes,omitempty"`
}

type RawLotView struct {
  CustomID          string          `json:"id_custom"`
  RegisteredAt      time.Time       `json:"data_hora_registro"`
  Coordinates       Coordinates     `json:"coordenadas"`
  PermitNumber      string          `json:"numero_dof"`
  LicenseNumber     string          `json:"numero_licenca"`
  SpeciesCommon     *string         `json:"especie_popular,omitempty"`
  SpeciesScientific *string         `json:"especie_cientifico,omitempty"`
  VolumeM3          decimal.Decimal `json:"volume_m3"`
}

type Coordinates struct {
  Lat decimal.Decimal `json:"lat"`
  Lon decimal.Decimal `json:"lon"`
}
