package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

// SeedPassword is the plaintext every seeded account authenticates with.
const SeedPassword = "senha-de-teste"

var (
	seedHashOnce sync.Once
	seedHash     string
)

// SeedPasswordHash hashes SeedPassword once per test binary, at the minimum
// bcrypt cost so seeding stays cheap.
func SeedPasswordHash(t *testing.T) string {
	t.Helper()
	seedHashOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte(SeedPassword), bcrypt.MinCost)
		if err != nil {
			t.Fatalf("hash seed password: %v", err)
		}
		seedHash = string(hash)
	})
	if seedHash == "" {
		t.Fatalf("seed password hash unavailable")
	}
	return seedHash
}

func SeedTechnician(t *testing.T, tx *gorm.DB) *types.FieldTechnician {
	t.Helper()
	row := &types.FieldTechnician{
		ID:           uuid.New(),
		Name:         "Tecnico Teste",
		Email:        fmt.Sprintf("tecnico-%s@teste.com", uuid.NewString()[:8]),
		PasswordHash: SeedPasswordHash(t),
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("seed technician: %v", err)
	}
	return row
}

func SeedSawmill(t *testing.T, tx *gorm.DB) *types.SawmillTeam {
	t.Helper()
	row := &types.SawmillTeam{
		ID:           uuid.New(),
		Name:         "Serraria Teste",
		Email:        fmt.Sprintf("serraria-%s@teste.com", uuid.NewString()[:8]),
		PasswordHash: SeedPasswordHash(t),
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("seed sawmill: %v", err)
	}
	return row
}

func SeedFactory(t *testing.T, tx *gorm.DB) *types.FactoryTeam {
	t.Helper()
	row := &types.FactoryTeam{
		ID:           uuid.New(),
		Name:         "Fabrica Teste",
		Email:        fmt.Sprintf("fabrica-%s@teste.com", uuid.NewString()[:8]),
		PasswordHash: SeedPasswordHash(t),
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("seed factory: %v", err)
	}
	return row
}

// SeedRawLot inserts a raw lot for the given technician with a unique custom
// id and a 150.75 m3 estimated volume.
func SeedRawLot(t *testing.T, tx *gorm.DB, technicianID uuid.UUID) *types.RawLot {
	t.Helper()
	species := "Ipe"
	row := &types.RawLot{
		ID:                uuid.New(),
		CustomID:          fmt.Sprintf("TORA-%s-%s", time.Now().Format("20060102"), uuid.NewString()[:8]),
		TechnicianID:      technicianID,
		RegisteredAt:      time.Now(),
		Latitude:          decimal.NewFromFloat(-3.4653),
		Longitude:         decimal.NewFromFloat(-62.2159),
		PermitNumber:      "DOF-TESTE-0001",
		LicenseNumber:     "LIC-TESTE-0001",
		SpeciesCommon:     &species,
		EstimatedVolumeM3: decimal.NewFromFloat(150.75),
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("seed raw lot: %v", err)
	}
	return row
}

// SeedSawnLot inserts a sawn lot consuming volume from the given raw lot.
func SeedSawnLot(t *testing.T, tx *gorm.DB, rawLotID, sawmillID uuid.UUID, volume decimal.Decimal) *types.SawnLot {
	t.Helper()
	now := time.Now()
	row := &types.SawnLot{
		ID:               uuid.New(),
		CustomID:         fmt.Sprintf("SERR-%s-%s", now.Format("20060102"), uuid.NewString()[:8]),
		RawLotID:         rawLotID,
		SawmillID:        sawmillID,
		RawLotReceivedAt: now,
		ProcessedAt:      now,
		OutputVolumeM3:   volume,
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("seed sawn lot: %v", err)
	}
	return row
}

// SeedProduct inserts a finished product derived from the given sawn lot.
func SeedProduct(t *testing.T, tx *gorm.DB, sawnLotID, factoryID uuid.UUID) *types.FinishedProduct {
	t.Helper()
	customID := fmt.Sprintf("PROD-%s-%s", time.Now().Format("20060102"), uuid.NewString()[:8])
	row := &types.FinishedProduct{
		ID:              uuid.New(),
		CustomID:        customID,
		SawnLotID:       sawnLotID,
		FactoryID:       factoryID,
		SKU:             "SKU-TESTE-001",
		Name:            "Produto Teste",
		ManufacturedAt:  time.Now(),
		TraceabilityURL: "http://localhost:8080/rastrear/" + customID,
	}
	if err := tx.Create(row).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return row
}
