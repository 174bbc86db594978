package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type TechnicianRepo interface {
  Create(ctx context.Context, tx *gorm.DB, technicians []*types.FieldTechnician) ([]*types.FieldTechnician, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FieldTechnician, error)
  GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.FieldTechnician, error)
  EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
}

type technicianRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTechnicianRepo(db *gorm.DB, baseLog *logger.Logger) TechnicianRepo {
  repoLog := baseLog.With("repo", "TechnicianRepo")
  return &technicianRepo{db: db, log: repoLog}
}

func (tr *technicianRepo) Create(ctx context.Context, tx *gorm.DB, technicians []*types.FieldTechnician) ([]*types.FieldTechnician, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  if len(technicians) == 0 {
    return []*types.FieldTechnician{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&technicians).Error; err != nil {
    return nil, err
  }
  return technicians, nil
}

func (tr *technicianRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FieldTechnician, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.FieldTechnician
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

func (tr *technicianRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.FieldTechnician, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var results []*types.FieldTechnician
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

func (tr *technicianRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = tr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.FieldTechnician{}).
    Where("email = ?", email).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}
