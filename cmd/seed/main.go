package main

import (
  "context"
  "flag"
  "fmt"
  "os"
  "time"

  "github.com/google/uuid"
  "github.com/shopspring/decimal"
  "gorm.io/gorm"

  "github.com/R0ger25/api-rastreabilidade-backend/internal/db"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/logger"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/services"
  "github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

// Provisions one account per role and, with -demo, a sample trace chain
// (raw lot -> sawn lot -> finished product). Safe to re-run: existing
// emails are skipped, never overwritten.
func main() {
  var demo bool
  var password string
  flag.BoolVar(&demo, "demo", false, "also seed a sample trace chain")
  flag.StringVar(&password, "password", "senha123", "password for the seeded accounts")
  flag.Parse()

  log, err := logger.New("development")
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Fatal("Postgres init failed", "error", err)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Fatal("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  technicianRepo := repos.NewTechnicianRepo(thePG, log)
  sawmillRepo := repos.NewSawmillRepo(thePG, log)
  factoryRepo := repos.NewFactoryRepo(thePG, log)
  rawLotRepo := repos.NewRawLotRepo(thePG, log)
  sawnLotRepo := repos.NewSawnLotRepo(thePG, log)
  productRepo := repos.NewProductRepo(thePG, log)

  ctx := context.Background()

  hash, err := services.HashPassword(password)
  if err != nil {
    log.Fatal("Failed to hash seed password", "error", err)
  }

  // An email identifies exactly one principal across all three tables, so
  // every seed checks all of them before inserting.
  emailTaken := func(tx *gorm.DB, email string) (bool, error) {
    for _, check := range []func(context.Context, *gorm.DB, string) (bool, error){
      technicianRepo.EmailExists,
      sawmillRepo.EmailExists,
      factoryRepo.EmailExists,
    } {
      exists, err := check(ctx, tx, email)
      if err != nil {
        return false, err
      }
      if exists {
        return true, nil
      }
    }
    return false, nil
  }

  var technician *types.FieldTechnician
  var sawmill *types.SawmillTeam
  var factory *types.FactoryTeam

  err = thePG.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    taken, err := emailTaken(tx, "tecnico@exemplo.com")
    if err != nil {
      return err
    }
    if taken {
      log.Info("Account already exists, skipping", "email", "tecnico@exemplo.com")
      if technician, err = technicianRepo.GetByEmail(ctx, tx, "tecnico@exemplo.com"); err != nil {
        return err
      }
    } else {
      created, err := technicianRepo.Create(ctx, tx, []*types.FieldTechnician{{
        ID:           uuid.New(),
        Name:         "Tecnico de Campo Demo",
        Email:        "tecnico@exemplo.com",
        PasswordHash: hash,
        Active:       true,
        CreatedAt:    time.Now(),
      }})
      if err != nil {
        return err
      }
      technician = created[0]
      log.Info("Seeded account", "email", technician.Email, "role", types.RoleTechnician)
    }

    taken, err = emailTaken(tx, "serraria@exemplo.com")
    if err != nil {
      return err
    }
    if taken {
      log.Info("Account already exists, skipping", "email", "serraria@exemplo.com")
      if sawmill, err = sawmillRepo.GetByEmail(ctx, tx, "serraria@exemplo.com"); err != nil {
        return err
      }
    } else {
      created, err := sawmillRepo.Create(ctx, tx, []*types.SawmillTeam{{
        ID:           uuid.New(),
        Name:         "Equipe Serraria Demo",
        Email:        "serraria@exemplo.com",
        PasswordHash: hash,
        Active:       true,
        CreatedAt:    time.Now(),
      }})
      if err != nil {
        return err
      }
      sawmill = created[0]
      log.Info("Seeded account", "email", sawmill.Email, "role", types.RoleSawmill)
    }

    taken, err = emailTaken(tx, "fabrica@exemplo.com")
    if err != nil {
      return err
    }
    if taken {
      log.Info("Account already exists, skipping", "email", "fabrica@exemplo.com")
      if factory, err = factoryRepo.GetByEmail(ctx, tx, "fabrica@exemplo.com"); err != nil {
        return err
      }
    } else {
      created, err := factoryRepo.Create(ctx, tx, []*types.FactoryTeam{{
        ID:           uuid.New(),
        Name:         "Equipe Fabrica Demo",
        Email:        "fabrica@exemplo.com",
        PasswordHash: hash,
        Active:       true,
        CreatedAt:    time.Now(),
      }})
      if err != nil {
        return err
      }
      factory = created[0]
      log.Info("Seeded account", "email", factory.Email, "role", types.RoleFactory)
    }
    return nil
  })
  if err != nil {
    log.Fatal("Account seeding failed", "error", err)
  }

  if !demo {
    return
  }
  if technician == nil || sawmill == nil || factory == nil {
    log.Fatal("Demo chain requires the three seeded accounts")
  }

  err = thePG.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    now := time.Now()
    species := "Ipe"
    scientific := "Handroanthus serratifolius"

    dayPrefix := services.DayPrefix(services.PrefixRawLot, now)
    if err := repos.LockDaySequence(ctx, tx, dayPrefix); err != nil {
      return err
    }
    count, err := rawLotRepo.CountByCustomIDPrefix(ctx, tx, dayPrefix+"-")
    if err != nil {
      return err
    }
    rawLots, err := rawLotRepo.Create(ctx, tx, []*types.RawLot{{
      ID:                uuid.New(),
      CustomID:          services.FormatCustomID(services.PrefixRawLot, now, count+1),
      TechnicianID:      technician.ID,
      RegisteredAt:      now,
      Latitude:          decimal.NewFromFloat(-3.4653),
      Longitude:         decimal.NewFromFloat(-62.2159),
      PermitNumber:      "DOF-DEMO-0001",
      LicenseNumber:     "LIC-DEMO-0001",
      SpeciesCommon:     &species,
      SpeciesScientific: &scientific,
      EstimatedVolumeM3: decimal.NewFromFloat(150.75),
    }})
    if err != nil {
      return err
    }
    rawLot := rawLots[0]

    dayPrefix = services.DayPrefix(services.PrefixSawnLot, now)
    if err := repos.LockDaySequence(ctx, tx, dayPrefix); err != nil {
      return err
    }
    count, err = sawnLotRepo.CountByCustomIDPrefix(ctx, tx, dayPrefix+"-")
    if err != nil {
      return err
    }
    productType := "Tabua"
    sawnLots, err := sawnLotRepo.Create(ctx, tx, []*types.SawnLot{{
      ID:               uuid.New(),
      CustomID:         services.FormatCustomID(services.PrefixSawnLot, now, count+1),
      RawLotID:         rawLot.ID,
      SawmillID:        sawmill.ID,
      RawLotReceivedAt: now,
      ProcessedAt:      now,
      OutputVolumeM3:   decimal.NewFromFloat(100),
      ProductType:      &productType,
    }})
    if err != nil {
      return err
    }
    sawnLot := sawnLots[0]

    dayPrefix = services.DayPrefix(services.PrefixProduct, now)
    if err := repos.LockDaySequence(ctx, tx, dayPrefix); err != nil {
      return err
    }
    count, err = productRepo.CountByCustomIDPrefix(ctx, tx, dayPrefix+"-")
    if err != nil {
      return err
    }
    customID := services.FormatCustomID(services.PrefixProduct, now, count+1)
    products, err := productRepo.Create(ctx, tx, []*types.FinishedProduct{{
      ID:              uuid.New(),
      CustomID:        customID,
      SawnLotID:       sawnLot.ID,
      FactoryID:       factory.ID,
      SKU:             "MESA-IPE-001",
      Name:            "Mesa de Ipe Demo",
      ManufacturedAt:  now,
      TraceabilityURL: fmt.Sprintf("http://localhost:8080/rastrear/%s", customID),
    }})
    if err != nil {
      return err
    }
    log.Info("Seeded demo chain",
      "lote_tora", rawLot.CustomID,
      "lote_serrado", sawnLot.CustomID,
      "produto", products[0].CustomID)
    return nil
  })
  if err != nil {
    log.Fatal("Demo chain seeding failed", "error", err)
  }
}
