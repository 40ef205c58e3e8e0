package usecase

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	gocache "github.com/patrickmn/go-cache"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/ethereum"
	"github.com/plaza-xyz/marketapi/domain"
)

const (
	nonceRange = int32(9999999)
	nonceTTL   = 10 * time.Minute
	tokenTTL   = 24 * time.Hour
)

type impl struct {
	jwtSecret    []byte
	signatureMsg string

	// nonces live in process memory. a shared store is needed once the
	// api runs more than one replica.
	nonces *gocache.Cache
}

func New(jwtSecret, signatureMsg string) domain.AuthUsecase {
	return &impl{
		jwtSecret:    []byte(jwtSecret),
		signatureMsg: signatureMsg,
		nonces:       gocache.New(nonceTTL, nonceTTL),
	}
}

func (im *impl) GetNonce(ctx ctx.Ctx, address domain.Address) (string, error) {
	if address.IsEmpty() {
		return "", domain.ErrInvalidInput
	}

	nonce := strconv.Itoa(int(rand.Int31n(nonceRange)))
	im.nonces.Set(address.ToLowerStr(), nonce, nonceTTL)
	return nonce, nil
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	if address.IsEmpty() {
		return "", domain.ErrInvalidInput
	}

	nonce, ok := im.nonces.Get(address.ToLowerStr())
	if !ok {
		return "", domain.ErrUnauthorized
	}
	// a nonce authorizes exactly one sign-in attempt
	im.nonces.Delete(address.ToLowerStr())

	msg := []byte(fmt.Sprintf(im.signatureMsg, nonce))
	if valid, err := ethereum.ValidateMsgSignature(msg, signature, string(address)); err != nil {
		ctx.WithField("err", err).Error("ethereum.ValidateMsgSignature failed")
		return "", domain.ErrUnauthorized
	} else if !valid {
		return "", domain.ErrUnauthorized
	}

	claims := domain.JwtCustomClaims{
		Address: address.ToLowerStr(),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", err
}
