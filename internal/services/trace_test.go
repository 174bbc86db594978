package services

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos"
	"github.com/R0ger25/api-rastreabilidade-backend/internal/repos/testutil"
	"github.com/R0ger25/api-rastreabilidade-backend/internal/types"
)

func newTraceServiceForDB(t *testing.T) (TraceService, *gorm.DB) {
	tx := testutil.Tx(t)
	log := testutil.Logger(t)
	rawLotRepo := repos.NewRawLotRepo(tx, log)
	sawnLotRepo := repos.NewSawnLotRepo(tx, log)
	productRepo := repos.NewProductRepo(tx, log)
	return NewTraceService(log, rawLotRepo, sawnLotRepo, productRepo), tx
}

func TestTrace_ReturnsFullChain(t *testing.T) {
	service, tx := newTraceServiceForDB(t)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	sawmill := testutil.SeedSawmill(t, tx)
	factory := testutil.SeedFactory(t, tx)
	rawLot := testutil.SeedRawLot(t, tx, technician.ID)
	sawnLot := testutil.SeedSawnLot(t, tx, rawLot.ID, sawmill.ID, decimal.NewFromFloat(100))
	product := testutil.SeedProduct(t, tx, sawnLot.ID, factory.ID)

	view, err := service.Trace(ctx, product.CustomID)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if view.Product == nil || view.SawnLot == nil || view.RawLot == nil {
		t.Fatalf("incomplete chain: %+v", view)
	}
	if view.Product.CustomID != product.CustomID {
		t.Fatalf("product id %q", view.Product.CustomID)
	}
	if view.Product.OriginCustomID != sawnLot.CustomID {
		t.Fatalf("product origin %q want %q", view.Product.OriginCustomID, sawnLot.CustomID)
	}
	if view.SawnLot.OriginCustomID != rawLot.CustomID {
		t.Fatalf("sawn lot origin %q want %q", view.SawnLot.OriginCustomID, rawLot.CustomID)
	}
	if !view.SawnLot.VolumeM3.Equal(sawnLot.OutputVolumeM3) {
		t.Fatalf("sawn volume %s", view.SawnLot.VolumeM3)
	}
	if !view.RawLot.VolumeM3.Equal(rawLot.EstimatedVolumeM3) {
		t.Fatalf("raw volume %s", view.RawLot.VolumeM3)
	}
	if !view.RawLot.Coordinates.Lat.Equal(rawLot.Latitude) || !view.RawLot.Coordinates.Lon.Equal(rawLot.Longitude) {
		t.Fatalf("coordinates %+v", view.RawLot.Coordinates)
	}
}

func TestTrace_UnknownProductIsNotFound(t *testing.T) {
	service, _ := newTraceServiceForDB(t)
	if _, err := service.Trace(context.Background(), "PROD-19990101-001"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v", err)
	}
}

func TestTrace_ToleratesBrokenChain(t *testing.T) {
	service, tx := newTraceServiceForDB(t)
	ctx := context.Background()

	technician := testutil.SeedTechnician(t, tx)
	sawmill := testutil.SeedSawmill(t, tx)
	factory := testutil.SeedFactory(t, tx)
	rawLot := testutil.SeedRawLot(t, tx, technician.ID)
	sawnLot := testutil.SeedSawnLot(t, tx, rawLot.ID, sawmill.ID, decimal.NewFromFloat(100))
	product := testutil.SeedProduct(t, tx, sawnLot.ID, factory.ID)

	// Sever the chain at the raw lot.
	if err := tx.Delete(&types.RawLot{}, "id = ?", rawLot.ID).Error; err != nil {
		t.Fatalf("delete raw lot: %v", err)
	}
	view, err := service.Trace(ctx, product.CustomID)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if view.SawnLot == nil {
		t.Fatalf("sawn lot dropped from view")
	}
	if view.RawLot != nil {
		t.Fatalf("expected nil raw lot, got %+v", view.RawLot)
	}

	// Sever it at the sawn lot as well.
	if err := tx.Delete(&types.SawnLot{}, "id = ?", sawnLot.ID).Error; err != nil {
		t.Fatalf("delete sawn lot: %v", err)
	}
	view, err = service.Trace(ctx, product.CustomID)
	if err != nil {
		t.Fatalf("Trace: %v", err)
	}
	if view.Product == nil {
		t.Fatalf("product dropped from view")
	}
	if view.SawnLot != nil || view.RawLot != nil {
		t.Fatalf("expected truncated view, got %+v", view)
	}
}
