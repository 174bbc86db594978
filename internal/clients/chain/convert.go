package chain

import (
  "crypto/ecdsa"
  "fmt"
  "math/big"

  "github.com/shopspring/decimal"
)

type ecdsaKey struct {
  priv *ecdsa.PrivateKey
}

// The contract stores volumes as integers in hundredths of a cubic meter:
// 150.75 m3 -> 15075. Volume columns are decimal(10,2), so this is exact.
func volumeToUnits(v decimal.Decimal) *big.Int {
  return v.Mul(decimal.NewFromInt(100)).BigInt()
}

// unitsToVolume is the inverse, used when reading records back off the chain.
func unitsToVolume(units *big.Int) decimal.Decimal {
  return decimal.NewFromBigInt(units, -2)
}

// The contract stores coordinates as a single "lat,lon" string.
func coordinateString(lat, lon decimal.Decimal) string {
  return fmt.Sprintf("%s,%s", lat.String(), lon.String())
}
