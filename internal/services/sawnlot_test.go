package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos/testutil"
)

func newSawnLotServiceForDB(t *testing.T) (SawnLotService, *gorm.DB) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	rawLotRepo := repos.NewRawLotRepo(tx, log)
	sawnLotRepo := repos.NewSawnLotRepo(tx, log)
	mirror := NewMirrorService(log, nil)
	return NewSawnLotService(tx, log, rawLotRepo, sawnLotRepo, mirror), tx
}

// A 150.75 m3 raw lot: 100 fits, the next 60 would overdraw and is rejected,
// and the remaining 50.75 consumes the lot exactly.
func TestSawnLotService_Create_ConservesOriginVolume(t *testing.T) {
	service, tx := newSawnLotServiceForDB(t)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	sawmill := testutil.SeedSawmill(t, tx).Principal()
	rawLot := testutil.SeedRawLot(t, tx, technician.ID)

	if _, err := service.Create(ctx, sawmill, CreateSawnLotInput{
		RawLotID:       rawLot.ID,
		OutputVolumeM3: decimal.NewFromFloat(100),
	}); err != nil {
		t.Fatalf("first lot: %v", err)
	}

	_, err := service.Create(ctx, sawmill, CreateSawnLotInput{
		RawLotID:       rawLot.ID,
		OutputVolumeM3: decimal.NewFromFloat(60),
	})
	var exceeded *VolumeExceededError
	if !errors.As(err, &exceeded) {
		t.Fatalf("overdraw: got %v", err)
	}
	if want := decimal.NewFromFloat(50.75); !exceeded.Available.Equal(want) {
		t.Fatalf("available %s want %s", exceeded.Available, want)
	}
	if want := decimal.NewFromFloat(60); !exceeded.Requested.Equal(want) {
		t.Fatalf("requested %s want %s", exceeded.Requested, want)
	}

	if _, err := service.Create(ctx, sawmill, CreateSawnLotInput{
		RawLotID:       rawLot.ID,
		OutputVolumeM3: decimal.NewFromFloat(50.75),
	}); err != nil {
		t.Fatalf("exact remainder: %v", err)
	}

	// The lot is now fully consumed; nothing more fits.
	if _, err := service.Create(ctx, sawmill, CreateSawnLotInput{
		RawLotID:       rawLot.ID,
		OutputVolumeM3: decimal.NewFromFloat(0.01),
	}); !errors.As(err, &exceeded) {
		t.Fatalf("consumed lot: got %v", err)
	}
}

func TestSawnLotService_Create_UnknownOriginIsNotFound(t *testing.T) {
	service, tx := newSawnLotServiceForDB(t)
	ctx := context.Background()

	sawmill := testutil.SeedSawmill(t, tx).Principal()
	_, err := service.Create(ctx, sawmill, CreateSawnLotInput{
		RawLotID:       uuid.New(),
		OutputVolumeM3: decimal.NewFromFloat(10),
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestSawnLotService_Create_RejectsOtherRoles(t *testing.T) {
	service, tx := newSawnLotServiceForDB(t)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	rawLot := testutil.SeedRawLot(t, tx, technician.ID)

	_, err := service.Create(ctx, technician.Principal(), CreateSawnLotInput{
		RawLotID:       rawLot.ID,
		OutputVolumeM3: decimal.NewFromFloat(10),
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v", err)
	}
}

func TestSawnLotService_Create_RequiresPositiveVolume(t *testing.T) {
	service, tx := newSawnLotServiceForDB(t)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	sawmill := testutil.SeedSawmill(t, tx).Principal()
	rawLot := testutil.SeedRawLot(t, tx, technician.ID)

	_, err := service.Create(ctx, sawmill, CreateSawnLotInput{
		RawLotID:       rawLot.ID,
		OutputVolumeM3: decimal.Zero,
	})
	if err == nil || !strings.Contains(err.Error(), "volume_saida_m3") {
		t.Fatalf("got %v", err)
	}
}

func TestSawnLotService_Create_AssignsCustomIDAndDefaults(t *testing.T) {
	service, tx := newSawnLotServiceForDB(t)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	sawmill := testutil.SeedSawmill(t, tx).Principal()
	rawLot := testutil.SeedRawLot(t, tx, technician.ID)

	lot, err := service.Create(ctx, sawmill, CreateSawnLotInput{
		RawLotID:       rawLot.ID,
		OutputVolumeM3: decimal.NewFromFloat(25),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	prefix, _, _, err := ParseCustomID(lot.CustomID)
	if err != nil {
		t.Fatalf("ParseCustomID(%q): %v", lot.CustomID, err)
	}
	if prefix != PrefixSawnLot {
		t.Fatalf("got prefix %q", prefix)
	}
	if lot.RawLotReceivedAt.IsZero() {
		t.Fatalf("received-at not defaulted")
	}
	if lot.SawmillID != sawmill.ID {
		t.Fatalf("lot attributed to %s", lot.SawmillID)
	}
}

func TestSawnLotService_ListOwn_SawmillOnly(t *testing.T) {
	service, tx := newSawnLotServiceForDB(t)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	mine := testutil.SeedSawmill(t, tx)
	other := testutil.SeedSawmill(t, tx)
	rawLot := testutil.SeedRawLot(t, tx, technician.ID)
	testutil.SeedSawnLot(t, tx, rawLot.ID, mine.ID, decimal.NewFromFloat(10))
	testutil.SeedSawnLot(t, tx, rawLot.ID, other.ID, decimal.NewFromFloat(10))

	lots, err := service.ListOwn(ctx, mine.Principal())
	if err != nil {
		t.Fatalf("ListOwn: %v", err)
	}
	if len(lots) != 1 || lots[0].SawmillID != mine.ID {
		t.Fatalf("got %d lots", len(lots))
	}

	if _, err := service.ListOwn(ctx, technician.Principal()); !errors.Is(err, ErrForbidden) {
		t.Fatalf("technician: got %v", err)
	}

	all, err := service.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d lots want 2", len(all))
	}
}
