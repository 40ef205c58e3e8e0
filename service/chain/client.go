package chain

import (
	"crypto/ecdsa"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/plaza-xyz/marketapi/base/backoff"
	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	bEthereum "github.com/plaza-xyz/marketapi/base/ethereum"
	"github.com/plaza-xyz/marketapi/base/log"
)

var ErrTxReverted = errors.New("transaction reverted")

type ClientCfg struct {
	RpcUrl string
	// SignerKey is the hex private key of the marketplace custody account,
	// used for state-changing registry calls
	SignerKey string
	ChainId   int64
	// MaxInflightRequests caps concurrent rpc calls. Zero means 8.
	MaxInflightRequests int
}

// Client performs read calls and signed state-changing calls against one chain
type Client interface {
	Call(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error)
	// Send packs, signs and submits a transaction and waits for its receipt.
	// A reverted receipt returns ErrTxReverted.
	Send(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) error
	Signer() common.Address
}

type clientImpl struct {
	client  *bEthereum.ThrottledClient
	key     *ecdsa.PrivateKey
	signer  common.Address
	chainId *big.Int
}

func NewClient(ctx bCtx.Ctx, cfg *ClientCfg) (Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RpcUrl)
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "url": cfg.RpcUrl}).Error("failed to dial rpc")
		return nil, err
	}
	key, err := crypto.HexToECDSA(cfg.SignerKey)
	if err != nil {
		ctx.WithField("err", err).Error("failed to parse signer key")
		return nil, err
	}
	maxInflight := cfg.MaxInflightRequests
	if maxInflight <= 0 {
		maxInflight = 8
	}
	return &clientImpl{
		client:  bEthereum.NewThrottledClient(client, maxInflight),
		key:     key,
		signer:  crypto.PubkeyToAddress(key.PublicKey),
		chainId: big.NewInt(cfg.ChainId),
	}, nil
}

func (c *clientImpl) Signer() common.Address {
	return c.signer
}

func (c *clientImpl) Call(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) ([]interface{}, error) {
	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return nil, err
	}
	msg := ethereum.CallMsg{
		To:   &addr,
		Data: data,
	}
	res, err := c.client.CallContract(ctx, msg, nil)
	if err != nil {
		ctx.WithField("err", err).Error("client.CallContract failed")
		return nil, err
	}
	unpacked, err := _abi.Unpack(method, res)
	if err != nil {
		ctx.WithField("err", err).Error("abi.Unpack failed")
		return nil, err
	}
	return unpacked, nil
}

func (c *clientImpl) Send(ctx bCtx.Ctx, addr common.Address, _abi abi.ABI, method string, params ...interface{}) error {
	data, err := _abi.Pack(method, params...)
	if err != nil {
		ctx.WithFields(log.Fields{
			"method": method,
			"params": params,
			"err":    err,
		}).Error("abi.Pack failed")
		return err
	}

	nonce, err := c.client.PendingNonceAt(ctx, c.signer)
	if err != nil {
		ctx.WithField("err", err).Error("client.PendingNonceAt failed")
		return err
	}
	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		ctx.WithField("err", err).Error("client.SuggestGasPrice failed")
		return err
	}
	gasLimit, err := c.client.EstimateGas(ctx, ethereum.CallMsg{
		From: c.signer,
		To:   &addr,
		Data: data,
	})
	if err != nil {
		ctx.WithField("err", err).Error("client.EstimateGas failed")
		return err
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &addr,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.key)
	if err != nil {
		ctx.WithField("err", err).Error("types.SignTx failed")
		return err
	}
	if err := c.client.SendTransaction(ctx, signed); err != nil {
		ctx.WithField("err", err).Error("client.SendTransaction failed")
		return err
	}

	receipt, err := waitMined(ctx, c.client, signed.Hash())
	if err != nil {
		ctx.WithFields(log.Fields{"err": err, "tx": signed.Hash().Hex()}).Error("waitMined failed")
		return err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		ctx.WithField("tx", signed.Hash().Hex()).Error("transaction reverted")
		return ErrTxReverted
	}
	return nil
}

func waitMined(ctx bCtx.Ctx, client *bEthereum.ThrottledClient, hash common.Hash) (*types.Receipt, error) {
	poll := backoff.NewExponential(500*time.Millisecond, 5*time.Second)
	for {
		receipt, err := client.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if err != ethereum.NotFound {
			return nil, err
		}
		if err := poll.Backoff(ctx); err != nil {
			return nil, err
		}
	}
}
