package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type FactoryRepo interface {
  Create(ctx context.Context, tx *gorm.DB, teams []*types.FactoryTeam) ([]*types.FactoryTeam, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FactoryTeam, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.FactoryTeam, error)
  EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type factoryRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewFactoryRepo(db *gorm.DB, baseLog *logger.Logger) FactoryRepo {
  repoLog := baseLog.With("repo", "FactoryRepo")
  return &factoryRepo{db: db, log: repoLog}
}

func (fr *factoryRepo) Create(ctx context.Context, tx *gorm.DB, teams []*types.FactoryTeam) ([]*types.FactoryTeam, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  if len(teams) == 0 {
    return []*types.FactoryTeam{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&teams).Error; err != nil {
    return nil, err
  }
  return teams, nil
}

func (fr *factoryRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FactoryTeam, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  var results []*types.FactoryTeam
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

func (fr *factoryRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.FactoryTeam, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  var results []*types.FactoryTeam
  if err := transaction.WithContext(ctx).
    Where("email = ?", email).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (fr *factoryRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = fr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.FactoryTeam{}).
    Where("email = ?", email).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}
