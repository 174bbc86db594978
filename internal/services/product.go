package services

import (
  "context"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type CreateProductInput struct {
  SawnLotID       uuid.UUID
  SKU             string
  Name            string
  FinishingNotes  *string
  TraceabilityURL string
}

type ProductService interface {
  Create(ctx context.Context, principal *types.Principal, input CreateProductInput) (*types.FinishedProduct, error)
  ListOwn(ctx context.Context, principal *types.Principal) ([]*types.FinishedProduct, error)
  Get(ctx context.Context, principal *types.Principal, id uuid.UUID) (*types.FinishedProduct, error)
}

type productService struct {
  db           *gorm.DB
  log          *logger.Logger
  sawnLotRepo  repos.SawnLotRepo
  productRepo  repos.ProductRepo
  mirror       MirrorService
  traceBaseURL string
}

func NewProductService(db *gorm.DB, log *logger.Logger, sawnLotRepo repos.SawnLotRepo, productRepo repos.ProductRepo, mirror MirrorService, traceBaseURL string) ProductService {
  serviceLog := log.With("service", "ProductService")
  return &productService{
    db:           db,
    log:          serviceLog,
    sawnLotRepo:  sawnLotRepo,
    productRepo:  productRepo,
    mirror:       mirror,
    traceBaseURL: strings.TrimRight(traceBaseURL, "/"),
  }
}

func (ps *productService) Create(ctx context.Context, principal *types.Principal, input CreateProductInput) (*types.FinishedProduct, error) {
  if principal.Role != types.RoleFactory {
    return nil, ErrForbidden
  }
  if input.SKU == "" {
    return nil, fmt.Errorf("sku_produto is required")
  }
  if input.Name == "" {
    return nil, fmt.Errorf("nome_produto is required")
  }

  now := time.Now()
  product := &types.FinishedProduct{
    ID:             uuid.New(),
    SawnLotID:      input.SawnLotID,
    FactoryID:      principal.ID,
    SKU:            input.SKU,
    Name:           input.Name,
    ManufacturedAt: now,
    FinishingNotes: input.FinishingNotes,
  }

  var originCustomID string
  if err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    sawnLot, err := ps.sawnLotRepo.GetByID(ctx, tx, input.SawnLotID)
    if err != nil {
      return fmt.Errorf("Failed to fetch origin sawn lot: %w", err)
    }
    if sawnLot == nil {
      return ErrNotFound
    }
    originCustomID = sawnLot.CustomID

    dayPrefix := DayPrefix(PrefixProduct, now)
    if err := repos.LockDaySequence(ctx, tx, dayPrefix); err != nil {
      return fmt.Errorf("Failed to lock day sequence: %w", err)
    }
    count, err := ps.productRepo.CountByCustomIDPrefix(ctx, tx, dayPrefix+"-")
    if err != nil {
      return fmt.Errorf("Failed to count today's products: %w", err)
    }
    product.CustomID = FormatCustomID(PrefixProduct, now, count+1)
    product.TraceabilityURL = input.TraceabilityURL
    if product.TraceabilityURL == "" {
      product.TraceabilityURL = fmt.Sprintf("%s/rastrear/%s", ps.traceBaseURL, product.CustomID)
    }
    if _, err := ps.productRepo.Create(ctx, tx, []*types.FinishedProduct{product}); err != nil {
      return fmt.Errorf("Failed to create finished product: %w", err)
    }
    return nil
  }); err != nil {
    return nil, err
  }

  ps.mirror.RelayProduct(product, originCustomID)
  return product, nil
}

func (ps *productService) ListOwn(ctx context.Context, principal *types.Principal) ([]*types.FinishedProduct, error) {
  if principal.Role != types.RoleFactory {
    return nil, ErrForbidden
  }
  return ps.productRepo.ListByFactory(ctx, nil, principal.ID)
}

func (ps *productService) Get(ctx context.Context, principal *types.Principal, id uuid.UUID) (*types.FinishedProduct, error) {
  product, err := ps.productRepo.GetByID(ctx, nil, id)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch finished product: %w", err)
  }
  if product == nil {
    return nil, ErrNotFound
  }
  if product.FactoryID != principal.ID {
    return nil, ErrForbidden
  }
  return product, nil
}
