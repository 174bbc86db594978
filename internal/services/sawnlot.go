package services

import (
  "context"
  "fmt"
  "time"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type CreateSawnLotInput struct {
  RawLotID         uuid.UUID
  RawLotReceivedAt time.Time
  OutputVolumeM3   decimal.Decimal
  ProductType      *string
  Dimensions       *string
  TreatmentNotes   *string
}

type SawnLotService interface {
  Create(ctx context.Context, principal *types.Principal, input CreateSawnLotInput) (*types.SawnLot, error)
  ListOwn(ctx context.Context, principal *types.Principal) ([]*types.SawnLot, error)
  // ListAll serves factory teams picking an origin lot; newest first.
  ListAll(ctx context.Context) ([]*types.SawnLot, error)
}

type sawnLotService struct {
  db          *gorm.DB
  log         *logger.Logger
  rawLotRepo  repos.RawLotRepo
  sawnLotRepo repos.SawnLotRepo
  mirror      MirrorService
}

func NewSawnLotService(db *gorm.DB, log *logger.Logger, rawLotRepo repos.RawLotRepo, sawnLotRepo repos.SawnLotRepo, mirror MirrorService) SawnLotService {
  serviceLog := log.With("service", "SawnLotService")
  return &sawnLotService{db: db, log: serviceLog, rawLotRepo: rawLotRepo, sawnLotRepo: sawnLotRepo, mirror: mirror}
}

func (ss *sawnLotService) Create(ctx context.Context, principal *types.Principal, input CreateSawnLotInput) (*types.SawnLot, error) {
  if principal.Role != types.RoleSawmill {
    return nil, ErrForbidden
  }
  if input.OutputVolumeM3.LessThanOrEqual(decimal.Zero) {
    return nil, fmt.Errorf("volume_saida_m3 must be positive")
  }

  now := time.Now()
  receivedAt := input.RawLotReceivedAt
  if receivedAt.IsZero() {
    receivedAt = now
  }
  lot := &types.SawnLot{
    ID:               uuid.New(),
    RawLotID:         input.RawLotID,
    SawmillID:        principal.ID,
    RawLotReceivedAt: receivedAt,
    ProcessedAt:      now,
    OutputVolumeM3:   input.OutputVolumeM3,
    ProductType:      input.ProductType,
    Dimensions:       input.Dimensions,
    TreatmentNotes:   input.TreatmentNotes,
  }

  var originCustomID string
  if err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    // Row lock on the origin so two concurrent sawn lots cannot both pass
    // the balance check against the same remaining volume.
    rawLot, err := ss.rawLotRepo.GetByIDForUpdate(ctx, tx, input.RawLotID)
    if err != nil {
      return fmt.Errorf("Failed to fetch origin raw lot: %w", err)
    }
    if rawLot == nil {
      return ErrNotFound
    }
    originCustomID = rawLot.CustomID

    consumed, err := ss.sawnLotRepo.SumOutputVolumeByRawLot(ctx, tx, rawLot.ID)
    if err != nil {
      return fmt.Errorf("Failed to sum consumed volume: %w", err)
    }
    available := rawLot.EstimatedVolumeM3.Sub(consumed)
    // Strict greater-than: fully consuming the lot is allowed.
    if input.OutputVolumeM3.GreaterThan(available) {
      return &VolumeExceededError{Requested: input.OutputVolumeM3, Available: available}
    }

    dayPrefix := DayPrefix(PrefixSawnLot, now)
    if err := repos.LockDaySequence(ctx, tx, dayPrefix); err != nil {
      return fmt.Errorf("Failed to lock day sequence: %w", err)
    }
    count, err := ss.sawnLotRepo.CountByCustomIDPrefix(ctx, tx, dayPrefix+"-")
    if err != nil {
      return fmt.Errorf("Failed to count today's sawn lots: %w", err)
    }
    lot.CustomID = FormatCustomID(PrefixSawnLot, now, count+1)
    if _, err := ss.sawnLotRepo.Create(ctx, tx, []*types.SawnLot{lot}); err != nil {
      return fmt.Errorf("Failed to create sawn lot: %w", err)
    }
    return nil
  }); err != nil {
    return nil, err
  }

  ss.mirror.RelaySawnLot(lot, originCustomID)
  return lot, nil
}

func (ss *sawnLotService) ListOwn(ctx context.Context, principal *types.Principal) ([]*types.SawnLot, error) {
  if principal.Role != types.RoleSawmill {
    return nil, ErrForbidden
  }
  return ss.sawnLotRepo.ListBySawmill(ctx, nil, principal.ID)
}

func (ss *sawnLotService) ListAll(ctx context.Context) ([]*types.SawnLot, error) {
  return ss.sawnLotRepo.ListAll(ctx, nil)
}
