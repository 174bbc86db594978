package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/requestdata"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
)

type ProductHandler struct {
  productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
  return &ProductHandler{productService: productService}
}

func (ph *ProductHandler) Create(c *gin.Context) {
  var req struct {
    SawnLotID       uuid.UUID `json:"id_lote_serrado_origem"`
    SKU             string    `json:"sku_produto"`
    Name            string    `json:"nome_produto"`
    FinishingNotes  *string   `json:"observacoes_acabamento"`
    TraceabilityURL string    `json:"url_rastreabilidade"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  product, err := ph.productService.Create(c.Request.Context(), rd.Principal, services.CreateProductInput{
    SawnLotID:       req.SawnLotID,
    SKU:             req.SKU,
    Name:            req.Name,
    FinishingNotes:  req.FinishingNotes,
    TraceabilityURL: req.TraceabilityURL,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, product)
}

func (ph *ProductHandler) ListOwn(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  products, err := ph.productService.ListOwn(c.Request.Context(), rd.Principal)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusOK, products)
}

func (ph *ProductHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondServiceError(c, services.ErrNotFound)
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  product, err := ph.productService.Get(c.Request.Context(), rd.Principal, id)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusOK, product)
}
