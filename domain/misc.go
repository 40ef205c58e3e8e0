package domain

import (
	"math/big"
	"strings"
)

var (
	Big0 = big.NewInt(0)
	Big1 = big.NewInt(1)
)

// BpsDenominator is the canonical fixed-point scale. Every rate in the system
// (market fee, royalty) is an integer number of basis points.
const BpsDenominator = 10000

type Address string

const EmptyAddress = Address("")

func (a Address) ToLower() Address {
	return Address(strings.ToLower(string(a)))
}

func (a Address) ToLowerStr() string {
	return strings.ToLower(string(a))
}

func (a Address) IsEmpty() bool {
	return len(a) == 0
}

func (a Address) Equals(b Address) bool {
	return a.ToLowerStr() == b.ToLowerStr()
}

// AssetId identifies one asset in the registry, decimal string form
type AssetId string

func (i AssetId) String() string {
	return string(i)
}

func (i AssetId) IsEmpty() bool {
	return len(i) == 0
}

// ToBig parses a decimal string amount. Amounts are persisted as decimal
// strings in the smallest currency unit and all arithmetic runs on big.Int.
func ToBig(amount string) (*big.Int, error) {
	if amount == "" {
		return new(big.Int), nil
	}
	n, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return nil, ErrInvalidNumberFormat
	}
	return n, nil
}

// FromBig renders an amount back to its persisted string form
func FromBig(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}

// MulBps multiplies an amount by a basis-point rate, rounding down
func MulBps(amount *big.Int, bps int64) *big.Int {
	res := new(big.Int).Mul(amount, big.NewInt(bps))
	return res.Div(res, big.NewInt(BpsDenominator))
}

// MulBpsCeil multiplies an amount by a basis-point rate, rounding up
func MulBpsCeil(amount *big.Int, bps int64) *big.Int {
	res := new(big.Int).Mul(amount, big.NewInt(bps))
	res.Add(res, big.NewInt(BpsDenominator-1))
	return res.Div(res, big.NewInt(BpsDenominator))
}
