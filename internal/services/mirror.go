package services

import (
  "context"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/clients/chain"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

// MirrorService relays committed registrations to the audit chain. The relay
// runs on its own goroutine with its own bounded-timeout context: it is only
// called after the primary row is committed, and no failure here may surface
// to the caller or roll anything back. A nil chain client disables the mirror
// entirely (relays become logged no-ops, existence checks report unavailable).
type MirrorService interface {
  RelayRawLot(lot *types.RawLot)
  RelaySawnLot(lot *types.SawnLot, originCustomID string)
  RelayProduct(product *types.FinishedProduct, originCustomID string)
  VerifyOnChain(ctx context.Context, customID string) (bool, error)
}

type mirrorService struct {
  log         *logger.Logger
  chainClient chain.Client
}

func NewMirrorService(log *logger.Logger, chainClient chain.Client) MirrorService {
  serviceLog := log.With("service", "MirrorService")
  return &mirrorService{log: serviceLog, chainClient: chainClient}
}

func (ms *mirrorService) RelayRawLot(lot *types.RawLot) {
  if ms.chainClient == nil {
    ms.log.Debug("Chain mirror disabled, skipping raw lot relay", "custom_id", lot.CustomID)
    return
  }
  species := ""
  if lot.SpeciesCommon != nil {
    species = *lot.SpeciesCommon
  } else if lot.SpeciesScientific != nil {
    species = *lot.SpeciesScientific
  }
  ev := chain.RawLotEvent{
    CustomID:      lot.CustomID,
    Latitude:      lot.Latitude,
    Longitude:     lot.Longitude,
    PermitNumber:  lot.PermitNumber,
    LicenseNumber: lot.LicenseNumber,
    Species:       species,
    VolumeM3:      lot.EstimatedVolumeM3,
  }
  go func() {
    ctx, cancel := context.WithTimeout(context.Background(), ms.chainClient.Timeout())
    defer cancel()
    txHash, err := ms.chainClient.RegisterRawLot(ctx, ev)
    if err != nil {
      ms.log.Warn("Chain relay failed for raw lot", "custom_id", ev.CustomID, "error", err)
      return
    }
    ms.log.Info("Raw lot mirrored to chain", "custom_id", ev.CustomID, "tx_hash", txHash)
  }()
}

func (ms *mirrorService) RelaySawnLot(lot *types.SawnLot, originCustomID string) {
  if ms.chainClient == nil {
    ms.log.Debug("Chain mirror disabled, skipping sawn lot relay", "custom_id", lot.CustomID)
    return
  }
  ev := chain.SawnLotEvent{
    CustomID:       lot.CustomID,
    OriginCustomID: originCustomID,
    VolumeM3:       lot.OutputVolumeM3,
  }
  if lot.ProductType != nil {
    ev.ProductType = *lot.ProductType
  }
  if lot.Dimensions != nil {
    ev.Dimensions = *lot.Dimensions
  }
  go func() {
    ctx, cancel := context.WithTimeout(context.Background(), ms.chainClient.Timeout())
    defer cancel()
    txHash, err := ms.chainClient.RegisterSawnLot(ctx, ev)
    if err != nil {
      ms.log.Warn("Chain relay failed for sawn lot", "custom_id", ev.CustomID, "error", err)
      return
    }
    ms.log.Info("Sawn lot mirrored to chain", "custom_id", ev.CustomID, "tx_hash", txHash)
  }()
}

func (ms *mirrorService) RelayProduct(product *types.FinishedProduct, originCustomID string) {
  if ms.chainClient == nil {
    ms.log.Debug("Chain mirror disabled, skipping product relay", "custom_id", product.CustomID)
    return
  }
  ev := chain.ProductEvent{
    CustomID:       product.CustomID,
    OriginCustomID: originCustomID,
    SKU:            product.SKU,
    Name:           product.Name,
  }
  go func() {
    ctx, cancel := context.WithTimeout(context.Background(), ms.chainClient.Timeout())
    defer cancel()
    txHash, err := ms.chainClient.RegisterProduct(ctx, ev)
    if err != nil {
      ms.log.Warn("Chain relay failed for product", "custom_id", ev.CustomID, "error", err)
      return
    }
    ms.log.Info("Product mirrored to chain", "custom_id", ev.CustomID, "tx_hash", txHash)
  }()
}

// VerifyOnChain checks whether the record for a custom id of any kind made it
// onto the audit chain.
func (ms *mirrorService) VerifyOnChain(ctx context.Context, customID string) (bool, error) {
  if ms.chainClient == nil {
    return false, ErrMirrorUnavailable
  }
  prefix, _, _, err := ParseCustomID(customID)
  if err != nil {
    return false, ErrNotFound
  }
  ctx, cancel := context.WithTimeout(ctx, ms.chainClient.Timeout())
  defer cancel()
  switch prefix {
  case PrefixRawLot:
    return ms.chainClient.RawLotExists(ctx, customID)
  case PrefixSawnLot:
    return ms.chainClient.SawnLotExists(ctx, customID)
  default:
    return ms.chainClient.ProductExists(ctx, customID)
  }
}
