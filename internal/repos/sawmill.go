package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type SawmillRepo interface {
  Create(ctx context.Context, tx *gorm.DB, teams []*types.SawmillTeam) ([]*types.SawmillTeam, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SawmillTeam, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.SawmillTeam, error)
  EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type sawmillRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSawmillRepo(db *gorm.DB, baseLog *logger.Logger) SawmillRepo {
  repoLog := baseLog.With("repo", "SawmillRepo")
  return &sawmillRepo{db: db, log: repoLog}
}

func (sr *sawmillRepo) Create(ctx context.Context, tx *gorm.DB, teams []*types.SawmillTeam) ([]*types.SawmillTeam, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  if len(teams) == 0 {
    return []*types.SawmillTeam{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&teams).Error; err != nil {
    return nil, err
  }
  return teams, nil
}

func (sr *sawmillRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.SawmillTeam, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.SawmillTeam
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

func (sr *sawmillRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.SawmillTeam, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var results []*types.SawmillTeam
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

func (sr *sawmillRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.SawmillTeam{}).
    Where("email = ?", email).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}
