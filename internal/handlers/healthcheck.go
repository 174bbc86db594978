package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "gorm.io/gorm"
)

type HealthHandler struct {
  db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
  return &HealthHandler{db: db}
}

func (hh *HealthHandler) Health(c *gin.Context) {
  c.String(http.StatusOK, "ok")
}

func (hh *HealthHandler) Root(c *gin.Context) {
  c.JSON(http.StatusOK, gin.H{
    "name":   "API Rastreabilidade",
    "status": "online",
  })
}

func (hh *HealthHandler) TestDB(c *gin.Context) {
  if err := hh.db.WithContext(c.Request.Context()).Exec("SELECT 1").Error; err != nil {
    RespondError(c, http.StatusInternalServerError, "db_unavailable", err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"status": "SUCESSO", "message": "A conexao com o banco de dados esta estavel!"})
}
