package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
)

type TraceHandler struct {
  traceService services.TraceService
  mirror       services.MirrorService
}

func NewTraceHandler(traceService services.TraceService, mirror services.MirrorService) *TraceHandler {
  return &TraceHandler{traceService: traceService, mirror: mirror}
}

// Trace is the public provenance lookup: no authentication, keyed by the
// finished product's custom id.
func (th *TraceHandler) Trace(c *gin.Context) {
  view, err := th.traceService.Trace(c.Request.Context(), c.Param("custom_id"))
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  c.JSON(http.StatusOK, view)
}

// VerifyOnChain reports whether the record for a custom id (any of the three
// kinds) is present on the audit chain.
func (th *TraceHandler) VerifyOnChain(c *gin.Context) {
  customID := c.Param("custom_id")
  exists, err := th.mirror.VerifyOnChain(c.Request.Context(), customID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  prefix, _, _, _ := services.ParseCustomID(customID)
  c.JSON(http.StatusOK, gin.H{
    "custom_id":     customID,
    "tipo":          prefix,
    "na_blockchain": exists,
  })
}
