package services

import (
  "context"
  "fmt"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

// TraceService reconstructs product -> sawn lot -> raw lot provenance for the
// public endpoint. Missing intermediate rows degrade to null entries in the
// view rather than failing the whole lookup.
type TraceService interface {
  Trace(ctx context.Context, productCustomID string) (*types.ChainView, error)
}

type traceService struct {
  log         *logger.Logger
  rawLotRepo  repos.RawLotRepo
  sawnLotRepo repos.SawnLotRepo
  productRepo repos.ProductRepo
}

func NewTraceService(log *logger.Logger, rawLotRepo repos.RawLotRepo, sawnLotRepo repos.SawnLotRepo, productRepo repos.ProductRepo) TraceService {
  serviceLog := log.With("service", "TraceService")
  return &traceService{log: serviceLog, rawLotRepo: rawLotRepo, sawnLotRepo: sawnLotRepo, productRepo: productRepo}
}

func (ts *traceService) Trace(ctx context.Context, productCustomID string) (*types.ChainView, error) {
  product, err := ts.productRepo.GetByCustomID(ctx, nil, productCustomID)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch finished product: %w", err)
  }
  if product == nil {
    return nil, ErrNotFound
  }

  view := &types.ChainView{
    Product: &types.ProductView{
      CustomID:        product.CustomID,
      SKU:             product.SKU,
      Name:            product.Name,
      ManufacturedAt:  product.ManufacturedAt,
      FinishingNotes:  product.FinishingNotes,
      TraceabilityURL: product.TraceabilityURL,
    },
  }

  sawnLot, err := ts.sawnLotRepo.GetByID(ctx, nil, product.SawnLotID)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch sawn lot: %w", err)
  }
  if sawnLot == nil {
    ts.log.Warn("Trace chain broken at sawn lot", "produto", product.CustomID)
    return view, nil
  }
  view.Product.OriginCustomID = sawnLot.CustomID
  view.SawnLot = &types.SawnLotView{
    CustomID:         sawnLot.CustomID,
    RawLotReceivedAt: sawnLot.RawLotReceivedAt,
    ProcessedAt:      sawnLot.ProcessedAt,
    VolumeM3:         sawnLot.OutputVolumeM3,
    ProductType:      sawnLot.ProductType,
    Dimensions:       sawnLot.Dimensions,
  }

  rawLot, err := ts.rawLotRepo.GetByID(ctx, nil, sawnLot.RawLotID)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch raw lot: %w", err)
  }
  if rawLot == nil {
    ts.log.Warn("Trace chain broken at raw lot", "lote_serrado", sawnLot.CustomID)
    return view, nil
  }
  view.SawnLot.OriginCustomID = rawLot.CustomID
  view.RawLot = &types.RawLotView{
    CustomID:          rawLot.CustomID,
    RegisteredAt:      rawLot.RegisteredAt,
    Coordinates:       types.Coordinates{Lat: rawLot.Latitude, Lon: rawLot.Longitude},
    PermitNumber:      rawLot.PermitNumber,
    LicenseNumber:     rawLot.LicenseNumber,
    SpeciesCommon:     rawLot.SpeciesCommon,
    SpeciesScientific: rawLot.SpeciesScientific,
    VolumeM3:          rawLot.EstimatedVolumeM3,
  }
  return view, nil
}
