package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos/testutil"
)

// newRawLotServiceForDB builds the service against a rolled-back transaction
// with the chain mirror disabled.
func newRawLotServiceForDB(t *testing.T) (RawLotService, repos.RawLotRepo, *gorm.DB) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	rawLotRepo := repos.NewRawLotRepo(tx, log)
	mirror := NewMirrorService(log, nil)
	return NewRawLotService(tx, log, rawLotRepo, mirror), rawLotRepo, tx
}

func TestRawLotService_Create_AssignsSequentialCustomID(t *testing.T) {
	service, rawLotRepo, tx := newRawLotServiceForDB(t)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx).Principal()
	input := CreateRawLotInput{
		Latitude:          decimal.NewFromFloat(-3.4653),
		Longitude:         decimal.NewFromFloat(-62.2159),
		PermitNumber:      "DOF-0001",
		LicenseNumber:     "LIC-0001",
		EstimatedVolumeM3: decimal.NewFromFloat(150.75),
	}

	dayPrefix := DayPrefix(PrefixRawLot, time.Now())
	before, err := rawLotRepo.CountByCustomIDPrefix(ctx, tx, dayPrefix+"-")
	if err != nil {
		t.Fatalf("CountByCustomIDPrefix: %v", err)
	}

	first, err := service.Create(ctx, technician, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if want := FormatCustomID(PrefixRawLot, time.Now(), before+1); first.CustomID != want {
		t.Fatalf("got custom id %q want %q", first.CustomID, want)
	}

	second, err := service.Create(ctx, technician, input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if want := FormatCustomID(PrefixRawLot, time.Now(), before+2); second.CustomID != want {
		t.Fatalf("got custom id %q want %q", second.CustomID, want)
	}
	if first.TechnicianID != technician.ID {
		t.Fatalf("lot attributed to %s", first.TechnicianID)
	}
}

func TestRawLotService_Create_RejectsNonTechnicians(t *testing.T) {
	service, _, tx := newRawLotServiceForDB(t)
	ctx := context.Background()

	sawmill := testutil.SeedSawmill(t, tx).Principal()
	_, err := service.Create(ctx, sawmill, CreateRawLotInput{
		PermitNumber:      "DOF-0001",
		LicenseNumber:     "LIC-0001",
		EstimatedVolumeM3: decimal.NewFromFloat(10),
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("got %v", err)
	}
}

func TestRawLotService_Create_ValidatesRequiredFields(t *testing.T) {
	service, _, tx := newRawLotServiceForDB(t)
	ctx := context.Background()
	technician := testutil.SeedTechnician(t, tx).Principal()

	if _, err := service.Create(ctx, technician, CreateRawLotInput{
		LicenseNumber:     "LIC-0001",
		EstimatedVolumeM3: decimal.NewFromFloat(10),
	}); err == nil || !strings.Contains(err.Error(), "numero_dof") {
		t.Fatalf("missing permit: got %v", err)
	}

	if _, err := service.Create(ctx, technician, CreateRawLotInput{
		PermitNumber:      "DOF-0001",
		EstimatedVolumeM3: decimal.NewFromFloat(10),
	}); err == nil || !strings.Contains(err.Error(), "numero_licenca_ambiental") {
		t.Fatalf("missing license: got %v", err)
	}

	if _, err := service.Create(ctx, technician, CreateRawLotInput{
		PermitNumber:  "DOF-0001",
		LicenseNumber: "LIC-0001",
	}); err == nil || !strings.Contains(err.Error(), "volume_estimado_m3") {
		t.Fatalf("zero volume: got %v", err)
	}
}

func TestRawLotService_List_TechniciansSeeOnlyTheirOwn(t *testing.T) {
	service, _, tx := newRawLotServiceForDB(t)
	ctx := context.Background()

	mine := testutil.SeedTechnician(t, tx)
	other := testutil.SeedTechnician(t, tx)
	testutil.SeedRawLot(t, tx, mine.ID)
	testutil.SeedRawLot(t, tx, other.ID)

	lots, err := service.List(ctx, mine.Principal())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(lots) != 1 || lots[0].TechnicianID != mine.ID {
		t.Fatalf("got %d lots", len(lots))
	}

	sawmill := testutil.SeedSawmill(t, tx)
	all, err := service.List(ctx, sawmill.Principal())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("sawmill sees %d lots want 2", len(all))
	}
}

func TestRawLotService_Get_EnforcesOwnershipForTechnicians(t *testing.T) {
	service, _, tx := newRawLotServiceForDB(t)
	ctx := context.Background()

	owner := testutil.SeedTechnician(t, tx)
	stranger := testutil.SeedTechnician(t, tx)
	lot := testutil.SeedRawLot(t, tx, owner.ID)

	got, err := service.Get(ctx, owner.Principal(), lot.ID)
	if err != nil {
		t.Fatalf("Get as owner: %v", err)
	}
	if got.ID != lot.ID {
		t.Fatalf("got %s", got.ID)
	}

	if _, err := service.Get(ctx, stranger.Principal(), lot.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger: got %v", err)
	}

	sawmill := testutil.SeedSawmill(t, tx)
	if _, err := service.Get(ctx, sawmill.Principal(), lot.ID); err != nil {
		t.Fatalf("downstream role: %v", err)
	}
}
