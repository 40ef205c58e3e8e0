package domain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBig(t *testing.T) {
	n, err := ToBig("12345")
	assert.NoError(t, err)
	assert.Equal(t, int64(12345), n.Int64())

	n, err = ToBig("")
	assert.NoError(t, err)
	assert.Zero(t, n.Sign())

	_, err = ToBig("12.5")
	assert.Equal(t, ErrInvalidNumberFormat, err)

	_, err = ToBig("0x10")
	assert.Equal(t, ErrInvalidNumberFormat, err)
}

func TestMulBps(t *testing.T) {
	assert.Equal(t, int64(25), MulBps(big.NewInt(1000), 250).Int64())
	// floors
	assert.Equal(t, int64(2), MulBps(big.NewInt(999), 25).Int64())
	assert.Zero(t, MulBps(big.NewInt(1000), 0).Sign())
}

func TestMulBpsCeil(t *testing.T) {
	assert.Equal(t, int64(25), MulBpsCeil(big.NewInt(1000), 250).Int64())
	// rounds up
	assert.Equal(t, int64(3), MulBpsCeil(big.NewInt(999), 25).Int64())
	assert.Zero(t, MulBpsCeil(big.NewInt(1000), 0).Sign())
}

func TestAddressEquals(t *testing.T) {
	assert.True(t, Address("0xAbC").Equals(Address("0xabc")))
	assert.False(t, Address("0xabc").Equals(Address("0xdef")))
	assert.True(t, EmptyAddress.IsEmpty())
}
