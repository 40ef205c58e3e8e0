// Package treasury implements the value-transfer primitive against the
// treasury payout gateway. Payout requests carry an idempotency key so the
// retrying transport can never double-pay.
package treasury

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/log"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/payment"
)

type ClientCfg struct {
	BaseUrl string
	ApiKey  string
	Timeout time.Duration
	Retries int
}

type client struct {
	http    *retryablehttp.Client
	baseUrl string
	apiKey  string
}

func NewClient(cfg *ClientCfg) payment.Transfer {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = cfg.Retries
	httpClient.HTTPClient.Timeout = cfg.Timeout
	httpClient.Logger = nil
	return &client{
		http:    httpClient,
		baseUrl: cfg.BaseUrl,
		apiKey:  cfg.ApiKey,
	}
}

type payoutRequest struct {
	Account        string `json:"account"`
	Amount         string `json:"amount"`
	IdempotencyKey string `json:"idempotencyKey"`
}

type payoutResponse struct {
	Status string `json:"status"`
}

func (c *client) Send(ctx bCtx.Ctx, account domain.Address, amount *big.Int) error {
	body, err := json.Marshal(payoutRequest{
		Account:        string(account),
		Amount:         domain.FromBig(amount),
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequest(http.MethodPost, fmt.Sprintf("%s/payouts", c.baseUrl), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		ctx.WithFields(log.Fields{"account": account, "err": err}).Error("treasury payout request failed")
		return domain.ErrTransferFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		ctx.WithFields(log.Fields{
			"account": account,
			"status":  resp.StatusCode,
		}).Error("treasury payout rejected")
		return domain.ErrTransferFailed
	}

	res := payoutResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		ctx.WithField("err", err).Error("treasury payout decode failed")
		return domain.ErrTransferFailed
	}
	if res.Status != "ok" {
		ctx.WithFields(log.Fields{"account": account, "status": res.Status}).Error("treasury payout failed")
		return domain.ErrTransferFailed
	}
	return nil
}
