package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/handlers"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/middleware"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

type RouterConfig struct {
  AuthHandler    *handlers.AuthHandler
  AuthMiddleware *middleware.AuthMiddleware
  HealthHandler  *handlers.HealthHandler
  RawLotHandler  *handlers.RawLotHandler
  SawnLotHandler *handlers.SawnLotHandler
  ProductHandler *handlers.ProductHandler
  TraceHandler   *handlers.TraceHandler
  AllowOrigins   []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  allowOrigins := cfg.AllowOrigins
  if len(allowOrigins) == 0 {
    allowOrigins = []string{"http://localhost", "http://127.0.0.1:5500"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     allowOrigins,
    AllowMethods:     []string{"GET", "POST", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  am := cfg.AuthMiddleware

  // Public
  router.GET("/", cfg.HealthHandler.Root)
  router.GET("/health", cfg.HealthHandler.Health)
  router.GET("/test-db", cfg.HealthHandler.TestDB)
  router.POST("/token", cfg.AuthHandler.Token)
  router.GET("/rastrear/:custom_id", cfg.TraceHandler.Trace)
  router.GET("/verificar_blockchain/:custom_id", cfg.TraceHandler.VerifyOnChain)

  // Any authenticated principal
  router.GET("/users/me", am.RequireAuth(), cfg.AuthHandler.Me)
  router.GET("/lotes_tora/", am.RequireAuth(), cfg.RawLotHandler.List)
  router.GET("/lotes_tora/:id", am.RequireAuth(), cfg.RawLotHandler.Get)

  // Technician
  router.POST("/lotes_tora/", am.RequireRole(types.RoleTechnician), cfg.RawLotHandler.Create)

  // Sawmill team
  router.POST("/lotes_serrada/", am.RequireRole(types.RoleSawmill), cfg.SawnLotHandler.Create)
  router.GET("/lotes_serrada/", am.RequireRole(types.RoleSawmill), cfg.SawnLotHandler.ListOwn)

  // Factory team
  router.GET("/lotes_serrado/", am.RequireRole(types.RoleFactory), cfg.SawnLotHandler.ListAll)
  router.POST("/produtos_acabados/", am.RequireRole(types.RoleFactory), cfg.ProductHandler.Create)
  router.GET("/produtos_acabados/", am.RequireRole(types.RoleFactory), cfg.ProductHandler.ListOwn)
  router.GET("/produtos_acabados/:id", am.RequireRole(types.RoleFactory), cfg.ProductHandler.Get)

  return router
}
