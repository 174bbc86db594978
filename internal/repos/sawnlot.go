package repos

import (
  "context"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type SawnLotRepo interface {
  Create(ctx context.Context, tx *gorm.DB, lots []*types.SawnLot) ([]*types.SawnLot, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SawnLot, error)
  GetByCustomID(ctx context.Context, tx *gorm.DB, customID string) (*types.SawnLot, error)
  ListBySawmill(ctx context.Context, tx *gorm.DB, sawmillID uuid.UUID) ([]*types.SawnLot, error)
  ListAll(ctx context.Context, tx *gorm.DB) ([]*types.SawnLot, error)
  SumOutputVolumeByRawLot(ctx context.Context, tx *gorm.DB, rawLotID uuid.UUID) (decimal.Decimal, error)
  CountByCustomIDPrefix(ctx context.Context, tx *gorm.DB, prefix string) (int64, error)
}

type sawnLotRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSawnLotRepo(db *gorm.DB, baseLog *logger.Logger) SawnLotRepo {
  repoLog := baseLog.With("repo", "SawnLotRepo")
  return &sawnLotRepo{db: db, log: repoLog}
}

func (sr *sawnLotRepo) Create(ctx context.Context, tx *gorm.DB, lots []*types.SawnLot) ([]*types.SawnLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if len(lots) == 0 {
    return []*types.SawnLot{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&lots).Error; err != nil {
    return nil, err
  }
  return lots, nil
}

func (sr *sawnLotRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SawnLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.SawnLot
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (sr *sawnLotRepo) GetByCustomID(ctx context.Context, tx *gorm.DB, customID string) (*types.SawnLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.SawnLot
  if err := transaction.WithContext(ctx).
    Where("id_lote_custom = ?", customID).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (sr *sawnLotRepo) ListBySawmill(ctx context.Context, tx *gorm.DB, sawmillID uuid.UUID) ([]*types.SawnLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.SawnLot
  if err := transaction.WithContext(ctx).
    Where("id_equipe_serraria = ?", sawmillID).
    Order("data_hora_processamento DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *sawnLotRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.SawnLot, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.SawnLot
  if err := transaction.WithContext(ctx).
    Order("data_hora_processamento DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *sawnLotRepo) SumOutputVolumeByRawLot(ctx context.Context, tx *gorm.DB, rawLotID uuid.UUID) (decimal.Decimal, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var sum decimal.NullDecimal
  if err := transaction.WithContext(ctx).
    Model(&types.SawnLot{}).
    Select("SUM(volume_saida_m3)").
    Where("id_lote_tora_origem = ?", rawLotID).
    Scan(&sum).Error; err != nil {
    return decimal.Zero, err
  }
  if !sum.Valid {
    return decimal.Zero, nil
  }
  return sum.Decimal, nil
}

func (sr *sawnLotRepo) CountByCustomIDPrefix(ctx context.Context, tx *gorm.DB, prefix string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.SawnLot{}).
    Where("id_lote_custom LIKE ?", prefix+"%").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
