package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/shopspring/decimal"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/requestdata"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
)

type RawLotHandler struct {
  rawLotService services.RawLotService
}

func NewRawLotHandler(rawLotService services.RawLotService) *RawLotHandler {
  return &RawLotHandler{rawLotService: rawLotService}
}

func (rh *RawLotHandler) Create(c *gin.Context) {
  var req struct {
    Latitude          decimal.Decimal `json:"coordenadas_gps_lat"`
    Longitude         decimal.Decimal `json:"coordenadas_gps_lon"`
    PermitNumber      string          `json:"numero_dof"`
    LicenseNumber     string          `json:"numero_licenca_ambiental"`
    SpeciesCommon     *string         `json:"especie_madeira_popular"`
    SpeciesScientific *string         `json:"especie_madeira_cientifico"`
    EstimatedVolumeM3 decimal.Decimal `json:"volume_estimado_m3"`
    EvidencePhotos    []string        `json:"fotos_evidencia"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  lot, err := rh.rawLotService.Create(c.Request.Context(), rd.Principal, services.CreateRawLotInput{
    Latitude:          req.Latitude,
    Longitude:         req.Longitude,
    PermitNumber:      req.PermitNumber,
    LicenseNumber:     req.LicenseNumber,
    SpeciesCommon:     req.SpeciesCommon,
    SpeciesScientific: req.SpeciesScientific,
    EstimatedVolumeM3: req.EstimatedVolumeM3,
    EvidencePhotos:    req.EvidencePhotos,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusCreated, lot)
}

func (rh *RawLotHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  lots, err := rh.rawLotService.List(c.Request.Context(), rd.Principal)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusOK, lots)
}

func (rh *RawLotHandler) Get(c *gin.Context) {
  id, err := uuid.Parse(c.Param("id"))
  if err != nil {
    RespondServiceError(c, services.ErrNotFound)
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  lot, err := rh.rawLotService.Get(c.Request.Context(), rd.Principal, id)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusOK, lot)
}
