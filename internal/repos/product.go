package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type ProductRepo interface {
  Create(ctx context.Context, tx *gorm.DB, products []*types.FinishedProduct) ([]*types.FinishedProduct, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FinishedProduct, error)
  GetByCustomID(ctx context.Context, tx *gorm.DB, customID string) (*types.FinishedProduct, error)
  ListByFactory(ctx context.Context, tx *gorm.DB, factoryID uuid.UUID) ([]*types.FinishedProduct, error)
  CountByCustomIDPrefix(ctx context.Context, tx *gorm.DB, prefix string) (int64, error)
}

type productRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewProductRepo(db *gorm.DB, baseLog *logger.Logger) ProductRepo {
  repoLog := baseLog.With("repo", "ProductRepo")
  return &productRepo{db: db, log: repoLog}
}

func (pr *productRepo) Create(ctx context.Context, tx *gorm.DB, products []*types.FinishedProduct) ([]*types.FinishedProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  if len(products) == 0 {
    return []*types.FinishedProduct{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&products).Error; err != nil {
    return nil, err
  }
  return products, nil
}

func (pr *productRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.FinishedProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.FinishedProduct
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

func (pr *productRepo) GetByCustomID(ctx context.Context, tx *gorm.DB, customID string) (*types.FinishedProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.FinishedProduct
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

func (pr *productRepo) ListByFactory(ctx context.Context, tx *gorm.DB, factoryID uuid.UUID) ([]*types.FinishedProduct, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var results []*types.FinishedProduct
  if err := transaction.WithContext(ctx).
    Where("id_equipe_fabrica = ?", factoryID).
    Order("data_hora_fabricacao DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *productRepo) CountByCustomIDPrefix(ctx context.Context, tx *gorm.DB, prefix string) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.FinishedProduct{}).
    Where("id_lote_custom LIKE ?", prefix+"%").
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}
