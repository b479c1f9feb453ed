package debtplan

import "github.com/shopspring/decimal"

// C2: Discretizer & State Interner — maps continuous balances to a
// discrete grid and computes a 32-bit state key via a three-level hash
// (§4.3). Discretization keeps the search's state graph small where
// precision doesn't matter (large balances) while retaining fine
// resolution near payoff, where decisions matter most.

var (
	quantumSmallMax  = decimal.NewFromInt(500)
	quantumMediumMax = decimal.NewFromInt(5000)
	quantumSmall     = decimal.NewFromInt(25)
	quantumMedium    = decimal.NewFromInt(100)
	quantumLarge     = decimal.NewFromInt(250)
)

// Quantum returns the discretization step for a given balance magnitude.
func Quantum(balance decimal.Decimal) decimal.Decimal {
	switch {
	case balance.Cmp(quantumSmallMax) <= 0:
		return quantumSmall
	case balance.Cmp(quantumMediumMax) <= 0:
		return quantumMedium
	default:
		return quantumLarge
	}
}

// Discretize snaps balance to its magnitude-dependent quantum, rounding
// to the nearest step (not flooring) so the snap error never exceeds
// half a quantum in either direction (§8 invariant: discretize(x) >=
// x - quantum(x)/2). Returns 0 for balances <= $1 (§4.3).
func Discretize(balance decimal.Decimal) int64 {
	if IsDust(balance) {
		return 0
	}
	q := Quantum(balance)
	qCents := q.Mul(decimal.NewFromInt(100)).IntPart()
	bCents := balance.Mul(decimal.NewFromInt(100)).IntPart()
	snapped := ((bCents + qCents/2) / qCents) * qCents
	return snapped / 100
}

// DiscretizeDecimal returns the same snapped value as Discretize, kept as
// a decimal.Decimal for callers that need to keep simulating on the
// discretized balance rather than just hashing it (§4.6).
func DiscretizeDecimal(balance decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(Discretize(balance))
}

// DiscretizeVector discretizes every entry of a BalanceVector.
func DiscretizeVector(v BalanceVector) []int64 {
	out := make([]int64, len(v))
	for i, b := range v {
		out[i] = Discretize(b)
	}
	return out
}

// primesH1 and fibH2 are the constant tables §4.3 specifies for the H1
// (weighted sum) and H2 (rolling hash) components of the state key.
var primesH1 = [5]int64{982451653, 982451679, 982451707, 982451719, 982451783}
var fibH2 = [10]int64{1, 1, 2, 3, 5, 8, 13, 21, 34, 55}

// StateKey combines three hashes of the discretized balance vector into
// one 32-bit integer (§4.3). All shifts and additions wrap at 32 bits.
func StateKey(discretized []int64) uint32 {
	var h1 uint32
	for i, v := range discretized {
		h1 += uint32(v) * uint32(primesH1[i%5])
	}

	var h2 uint32
	for i, v := range discretized {
		h2 = uint32((int64(h2)<<7)-int64(h2)) + uint32(v)*uint32(fibH2[i%10])
	}

	var h3 uint32
	for _, v := range discretized {
		h3 ^= uint32(v) * 0x9e3779b9
	}

	return h1 ^ (h2 << 11) ^ (h3 << 21)
}

// StateKeyFromBalances is a convenience wrapper combining Discretize and
// StateKey for a BalanceVector.
func StateKeyFromBalances(v BalanceVector) uint32 {
	return StateKey(DiscretizeVector(v))
}
