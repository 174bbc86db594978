package chain

import (
	"math/big"
	"testing"

	"github.com/shopspring/decimal"
)

func TestVolumeToUnits_ScalesToHundredths(t *testing.T) {
	cases := []struct {
		volume string
		want   int64
	}{
		{"150.75", 15075},
		{"100", 10000},
		{"0.01", 1},
		{"0", 0},
	}
	for _, c := range cases {
		v, err := decimal.NewFromString(c.volume)
		if err != nil {
			t.Fatalf("decimal.NewFromString(%q): %v", c.volume, err)
		}
		got := volumeToUnits(v)
		if got.Cmp(big.NewInt(c.want)) != 0 {
			t.Fatalf("%s m3: got %s want %d", c.volume, got, c.want)
		}
	}
}

func TestUnitsToVolume_InvertsVolumeToUnits(t *testing.T) {
	v, err := decimal.NewFromString("150.75")
	if err != nil {
		t.Fatalf("decimal.NewFromString: %v", err)
	}
	back := unitsToVolume(volumeToUnits(v))
	if !back.Equal(v) {
		t.Fatalf("roundtrip changed value: got %s want %s", back, v)
	}
}

func TestCoordinateString_JoinsLatLon(t *testing.T) {
	lat, _ := decimal.NewFromString("-3.4653")
	lon, _ := decimal.NewFromString("-62.2159")
	if got := coordinateString(lat, lon); got != "-3.4653,-62.2159" {
		t.Fatalf("got %q", got)
	}
}
