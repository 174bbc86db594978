package handlers

import (
  "net/http"
  "time"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/shopspring/decimal"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/requestdata"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
)

type SawnLotHandler struct {
  sawnLotService services.SawnLotService
}

func NewSawnLotHandler(sawnLotService services.SawnLotService) *SawnLotHandler {
  return &SawnLotHandler{sawnLotService: sawnLotService}
}

func (sh *SawnLotHandler) Create(c *gin.Context) {
  var req struct {
    RawLotID         uuid.UUID       `json:"id_lote_tora_origem"`
    RawLotReceivedAt time.Time       `json:"data_recebimento_tora"`
    OutputVolumeM3   decimal.Decimal `json:"volume_saida_m3"`
    ProductType      *string         `json:"tipo_produto"`
    Dimensions       *string         `json:"dimensoes"`
    TreatmentNotes   *string         `json:"observacoes_tratamento"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  lot, err := sh.sawnLotService.Create(c.Request.Context(), rd.Principal, services.CreateSawnLotInput{
    RawLotID:         req.RawLotID,
    RawLotReceivedAt: req.RawLotReceivedAt,
    OutputVolumeM3:   req.OutputVolumeM3,
    ProductType:      req.ProductType,
    Dimensions:       req.Dimensions,
    TreatmentNotes:   req.TreatmentNotes,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, lot)
}

func (sh *SawnLotHandler) ListOwn(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  lots, err := sh.sawnLotService.ListOwn(c.Request.Context(), rd.Principal)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusOK, lots)
}

// ListAll serves factory teams browsing every sawn lot, newest first.
func (sh *SawnLotHandler) ListAll(c *gin.Context) {
  lots, err := sh.sawnLotService.ListAll(c.Request.Context())
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusOK, lots)
}
