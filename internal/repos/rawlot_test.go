package repos

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos/testutil"
	"github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

func TestRawLotRepo_GetByCustomID(t *testing.T) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	repo := NewRawLotRepo(tx, log)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	seeded := testutil.SeedRawLot(t, tx, technician.ID)

	got, err := repo.GetByCustomID(ctx, tx, seeded.CustomID)
	if err != nil {
		t.Fatalf("GetByCustomID: %v", err)
	}
	if got == nil || got.ID != seeded.ID {
		t.Fatalf("got %+v", got)
	}

	missing, err := repo.GetByCustomID(ctx, tx, "TORA-19990101-001")
	if err != nil {
		t.Fatalf("GetByCustomID missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unknown custom id, got %+v", missing)
	}
}

func TestRawLotRepo_CountByCustomIDPrefix(t *testing.T) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	repo := NewRawLotRepo(tx, log)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	a := testutil.SeedRawLot(t, tx, technician.ID)
	b := testutil.SeedRawLot(t, tx, technician.ID)

	// Both seeded lots share today's prefix.
	prefix := a.CustomID[:len("TORA-20060102-")]
	if b.CustomID[:len(prefix)] != prefix {
		t.Fatalf("seeded lots do not share a prefix: %q vs %q", a.CustomID, b.CustomID)
	}
	count, err := repo.CountByCustomIDPrefix(ctx, tx, prefix)
	if err != nil {
		t.Fatalf("CountByCustomIDPrefix: %v", err)
	}
	if count != 2 {
		t.Fatalf("got count %d want 2", count)
	}

	count, err = repo.CountByCustomIDPrefix(ctx, tx, "TORA-19990101-")
	if err != nil {
		t.Fatalf("CountByCustomIDPrefix: %v", err)
	}
	if count != 0 {
		t.Fatalf("got count %d want 0", count)
	}
}

func TestRawLotRepo_ListByTechnician_NewestFirst(t *testing.T) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	repo := NewRawLotRepo(tx, log)
	ctx := context.Background()

	mine := testutil.SeedTechnician(t, tx)
	other := testutil.SeedTechnician(t, tx)
	older := testutil.SeedRawLot(t, tx, mine.ID)
	testutil.SeedRawLot(t, tx, other.ID)

	if err := tx.Model(&types.RawLot{}).
		Where("id = ?", older.ID).
		Update("data_hora_registro", time.Now().Add(-time.Hour)).Error; err != nil {
		t.Fatalf("age older lot: %v", err)
	}
	newer := testutil.SeedRawLot(t, tx, mine.ID)

	lots, err := repo.ListByTechnician(ctx, tx, mine.ID)
	if err != nil {
		t.Fatalf("ListByTechnician: %v", err)
	}
	if len(lots) != 2 {
		t.Fatalf("got %d lots want 2", len(lots))
	}
	if lots[0].ID != newer.ID || lots[1].ID != older.ID {
		t.Fatalf("unexpected order: %s then %s", lots[0].CustomID, lots[1].CustomID)
	}
	for _, lot := range lots {
		if lot.TechnicianID != mine.ID {
			t.Fatalf("lot %s belongs to %s", lot.CustomID, lot.TechnicianID)
		}
	}
}

func TestRawLotRepo_PersistsDecimalColumns(t *testing.T) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	repo := NewRawLotRepo(tx, log)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	seeded := testutil.SeedRawLot(t, tx, technician.ID)

	got, err := repo.GetByID(ctx, tx, seeded.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	want := decimal.NewFromFloat(150.75)
	if !got.EstimatedVolumeM3.Equal(want) {
		t.Fatalf("volume changed across storage: got %s want %s", got.EstimatedVolumeM3, want)
	}
	if !got.Latitude.Equal(seeded.Latitude) || !got.Longitude.Equal(seeded.Longitude) {
		t.Fatalf("coordinates changed across storage: %s,%s", got.Latitude, got.Longitude)
	}
}
