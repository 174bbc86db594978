package main

import (
  "fmt"
  "os"
  "strings"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/clients/chain"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/db"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/handlers"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/middleware"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/server"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "", log)
  if jwtSecretKey == "" {
    log.Fatal("JWT_SECRET_KEY is not set")
  }
  traceBaseURL := utils.GetEnv("PUBLIC_TRACE_BASE_URL", "http://localhost:8080", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Repos
  log.Info("Setting up repos from main...")
  technicianRepo := repos.NewTechnicianRepo(thePG, log)
  sawmillRepo := repos.NewSawmillRepo(thePG, log)
  factoryRepo := repos.NewFactoryRepo(thePG, log)
  rawLotRepo := repos.NewRawLotRepo(thePG, log)
  sawnLotRepo := repos.NewSawnLotRepo(thePG, log)
  productRepo := repos.NewProductRepo(thePG, log)

  // Chain mirror (optional: the API runs without it, writes just are not mirrored)
  var chainClient chain.Client
  chainClient, err = chain.NewFromEnv(log)
  if err != nil {
    log.Warn("Chain mirror disabled", "reason", err)
    chainClient = nil
  }

  // Services
  log.Info("Setting up services from main...")
  mirrorService := services.NewMirrorService(log, chainClient)
  identityService := services.NewIdentityService(thePG, log, technicianRepo, sawmillRepo, factoryRepo, jwtSecretKey)
  rawLotService := services.NewRawLotService(thePG, log, rawLotRepo, mirrorService)
  sawnLotService := services.NewSawnLotService(thePG, log, rawLotRepo, sawnLotRepo, mirrorService)
  productService := services.NewProductService(thePG, log, sawnLotRepo, productRepo, mirrorService, traceBaseURL)
  traceService := services.NewTraceService(log, rawLotRepo, sawnLotRepo, productRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(identityService)
  healthHandler := handlers.NewHealthHandler(thePG)
  rawLotHandler := handlers.NewRawLotHandler(rawLotService)
  sawnLotHandler := handlers.NewSawnLotHandler(sawnLotService)
  productHandler := handlers.NewProductHandler(productService)
  traceHandler := handlers.NewTraceHandler(traceService, mirrorService)

  // Middleware
  authMiddleware := middleware.NewAuthMiddleware(log, identityService)

  // Router
  log.Info("Setting up router from main...")
  var allowOrigins []string
  if originsEnv := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); originsEnv != "" {
    allowOrigins = strings.Split(originsEnv, ",")
  }
  router := server.NewRouter(server.RouterConfig{
    AuthHandler:    authHandler,
    AuthMiddleware: authMiddleware,
    HealthHandler:  healthHandler,
    RawLotHandler:  rawLotHandler,
    SawnLotHandler: sawnLotHandler,
    ProductHandler: productHandler,
    TraceHandler:   traceHandler,
    AllowOrigins:   allowOrigins,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Fatal("Server failed", "error", err)
  }
}
