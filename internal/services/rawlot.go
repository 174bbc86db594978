package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type CreateRawLotInput struct {
  Latitude          decimal.Decimal
  Longitude         decimal.Decimal
  PermitNumber      string
  LicenseNumber     string
  SpeciesCommon     *string
  SpeciesScientific *string
  EstimatedVolumeM3 decimal.Decimal
  EvidencePhotos    []string
}

type RawLotService interface {
  Create(ctx context.Context, principal *types.Principal, input CreateRawLotInput) (*types.RawLot, error)
  List(ctx context.Context, principal *types.Principal) ([]*types.RawLot, error)
  Get(ctx context.Context, principal *types.Principal, id uuid.UUID) (*types.RawLot, error)
}

type rawLotService struct {
  db         *gorm.DB
  log        *logger.Logger
  rawLotRepo repos.RawLotRepo
  mirror     MirrorService
}

func NewRawLotService(db *gorm.DB, log *logger.Logger, rawLotRepo repos.RawLotRepo, mirror MirrorService) RawLotService {
  serviceLog := log.With("service", "RawLotService")
  return &rawLotService{db: db, log: serviceLog, rawLotRepo: rawLotRepo, mirror: mirror}
}

func (rs *rawLotService) Create(ctx context.Context, principal *types.Principal, input CreateRawLotInput) (*types.RawLot, error) {
  if principal.Role != types.RoleTechnician {
    return nil, ErrForbidden
  }
  if input.PermitNumber == "" {
    return nil, fmt.Errorf("numero_dof is required")
  }
  if input.LicenseNumber == "" {
    return nil, fmt.Errorf("numero_licenca_ambiental is required")
  }
  if input.EstimatedVolumeM3.LessThanOrEqual(decimal.Zero) {
    return nil, fmt.Errorf("volume_estimado_m3 must be positive")
  }

  now := time.Now()
  lot := &types.RawLot{
    ID:                uuid.New(),
    TechnicianID:      principal.ID,
    RegisteredAt:      now,
    Latitude:          input.Latitude,
    Longitude:         input.Longitude,
    PermitNumber:      input.PermitNumber,
    LicenseNumber:     input.LicenseNumber,
    SpeciesCommon:     input.SpeciesCommon,
    SpeciesScientific: input.SpeciesScientific,
    EstimatedVolumeM3: input.EstimatedVolumeM3,
  }
  if len(input.EvidencePhotos) > 0 {
    photos, err := json.Marshal(input.EvidencePhotos)
    if err != nil {
      return nil, fmt.Errorf("Failed to encode evidence photos: %w", err)
    }
    lot.EvidencePhotos = photos
  }

  if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    dayPrefix := DayPrefix(PrefixRawLot, now)
    if err := repos.LockDaySequence(ctx, tx, dayPrefix); err != nil {
      return fmt.Errorf("Failed to lock day sequence: %w", err)
    }
    count, err := rs.rawLotRepo.CountByCustomIDPrefix(ctx, tx, dayPrefix+"-")
    if err != nil {
      return fmt.Errorf("Failed to count today's raw lots: %w", err)
    }
    lot.CustomID = FormatCustomID(PrefixRawLot, now, count+1)
    if _, err := rs.rawLotRepo.Create(ctx, tx, []*types.RawLot{lot}); err != nil {
      return fmt.Errorf("Failed to create raw lot: %w", err)
    }
    return nil
  }); err != nil {
    return nil, err
  }

  rs.mirror.RelayRawLot(lot)
  return lot, nil
}

// List is role-filtered: technicians only see their own lots, downstream
// roles see all of them.
func (rs *rawLotService) List(ctx context.Context, principal *types.Principal) ([]*types.RawLot, error) {
  if principal.Role == types.RoleTechnician {
    return rs.rawLotRepo.ListByTechnician(ctx, nil, principal.ID)
  }
  return rs.rawLotRepo.ListAll(ctx, nil)
}

func (rs *rawLotService) Get(ctx context.Context, principal *types.Principal, id uuid.UUID) (*types.RawLot, error) {
  lot, err := rs.rawLotRepo.GetByID(ctx, nil, id)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch raw lot: %w", err)
  }
  if lot == nil {
    return nil, ErrNotFound
  }
  if principal.Role == types.RoleTechnician && lot.TechnicianID != principal.ID {
    return nil, ErrForbidden
  }
  return lot, nil
}
