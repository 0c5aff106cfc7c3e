package builtin

import (
	gobig "math/big"

	"github.com/filecoin-project/go-state-types/big"
)

// MaxAmount is the largest representable request amount, 2^256 - 1.
var MaxAmount = big.Int{Int: new(gobig.Int).Sub(new(gobig.Int).Lsh(gobig.NewInt(1), 256), gobig.NewInt(1))}

// Denominator of burn fee rates.
const FeeBasis = 10000

// Returns whether amt lies in [0, MaxAmount].
func AmountInRange(amt big.Int) bool {
	return !amt.Nil() && amt.Sign() >= 0 && !amt.GreaterThan(MaxAmount)
}
