package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/delivery"
	"github.com/plaza-xyz/marketapi/domain"
	dLedger "github.com/plaza-xyz/marketapi/domain/ledger"
	authMiddleware "github.com/plaza-xyz/marketapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	ledger dLedger.UseCase
	// decimals shifts raw ledger units into the human-readable display amount
	decimals int32
}

func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, ledger dLedger.UseCase, decimals int32) {
	h := &handler{ledger, decimals}
	g := e.Group("/ledger")
	g.GET("/balance", h.getBalance, authMw.Auth())
	g.POST("/claim", h.claimFunds, authMw.Auth())
}

type balanceResp struct {
	Account domain.Address `json:"account"`
	Amount  string         `json:"amount"`
	Display string         `json:"display"`
}

func (h *handler) getBalance(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)

	balance, err := h.ledger.BalanceOf(ctx, caller)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}

	amount, err := balance.AmountBig()
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, balanceResp{
		Account: balance.Account,
		Amount:  balance.Amount,
		Display: decimal.NewFromBigInt(amount, -h.decimals).String(),
	})
}

func (h *handler) claimFunds(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)

	claimed, err := h.ledger.Claim(ctx, caller)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, balanceResp{
		Account: caller.ToLower(),
		Amount:  domain.FromBig(claimed),
		Display: decimal.NewFromBigInt(claimed, -h.decimals).String(),
	})
}
