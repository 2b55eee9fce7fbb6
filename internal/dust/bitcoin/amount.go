package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// BtcToSatoshis converts a BTC amount to satoshis, rounding to the nearest satoshi.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return uint64(amt), nil
}

// CostBTC returns the fee in BTC for vsize vbytes at feeRate sat/vB.
func CostBTC(vsize int, feeRate float64) float64 {
	return float64(vsize) * feeRate / btcutil.SatoshiPerBitcoin
}
