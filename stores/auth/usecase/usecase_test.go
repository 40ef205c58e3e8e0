package usecase_test

import (
	"crypto/ecdsa"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/ethereum"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/stores/auth/usecase"
)

const testSignatureMsg = "Welcome to Plaza! Sign this message to log in. Nonce: %s"

func newSigner(t *testing.T) (domain.Address, *ecdsa.PrivateKey) {
	privateKey, publicKey, err := ethereum.GenerateKey()
	require.NoError(t, err)
	return domain.Address(crypto.PubkeyToAddress(*publicKey).Hex()), privateKey
}

func signNonce(t *testing.T, key *ecdsa.PrivateKey, nonce string) string {
	msg := []byte(fmt.Sprintf(testSignatureMsg, nonce))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	require.NoError(t, err)
	return hexutil.Encode(sig)
}

func TestSignAndParseToken(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", testSignatureMsg)
	address, key := newSigner(t)

	nonce, err := u.GetNonce(ctx, address)
	require.NoError(t, err)

	tkn, err := u.SignToken(ctx, address, signNonce(t, key, nonce))
	require.NoError(t, err)
	assert.NotEmpty(t, tkn)

	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, address.ToLowerStr(), ads)
}

func TestSignTokenWithoutNonce(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", testSignatureMsg)
	address, key := newSigner(t)

	_, err := u.SignToken(ctx, address, signNonce(t, key, "123"))
	assert.Equal(t, domain.ErrUnauthorized, err)
}

func TestSignTokenWrongSigner(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", testSignatureMsg)
	address, _ := newSigner(t)
	_, strangerKey := newSigner(t)

	nonce, err := u.GetNonce(ctx, address)
	require.NoError(t, err)

	_, err = u.SignToken(ctx, address, signNonce(t, strangerKey, nonce))
	assert.Equal(t, domain.ErrUnauthorized, err)
}

func TestNonceIsSingleUse(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", testSignatureMsg)
	address, key := newSigner(t)

	nonce, err := u.GetNonce(ctx, address)
	require.NoError(t, err)
	sig := signNonce(t, key, nonce)

	_, err = u.SignToken(ctx, address, sig)
	require.NoError(t, err)

	_, err = u.SignToken(ctx, address, sig)
	assert.Equal(t, domain.ErrUnauthorized, err)
}

func TestSignTokenEmptyAddress(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", testSignatureMsg)
	_, err := u.SignToken(ctx, "", "0x00")
	assert.Equal(t, domain.ErrInvalidInput, err)
}

func TestParseTokenGarbage(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("jwt-secret", testSignatureMsg)
	_, err := u.ParseToken(ctx, "not-a-token")
	assert.Error(t, err)
}

func TestParseTokenWrongSecret(t *testing.T) {
	ctx := ctx.Background()
	u := usecase.New("secret-a", testSignatureMsg)
	address, key := newSigner(t)

	nonce, err := u.GetNonce(ctx, address)
	require.NoError(t, err)
	tkn, err := u.SignToken(ctx, address, signNonce(t, key, nonce))
	require.NoError(t, err)

	_, err = usecase.New("secret-b", testSignatureMsg).ParseToken(ctx, tkn)
	assert.Error(t, err)
}
