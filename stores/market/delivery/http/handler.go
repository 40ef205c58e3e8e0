package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/delivery"
	"github.com/plaza-xyz/marketapi/domain"
	dMarket "github.com/plaza-xyz/marketapi/domain/market"
	authMiddleware "github.com/plaza-xyz/marketapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	market dMarket.AdminUseCase
}

func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, market dMarket.AdminUseCase) {
	h := &handler{market}
	g := e.Group("/market")
	g.GET("/config", h.getConfig)
	g.PUT("/fee", h.updateMarketFee, authMw.Auth(), authMw.IsOperator())
	g.PUT("/donation-limit", h.updateDonationLimit, authMw.Auth(), authMw.IsOperator())
}

func (h *handler) getConfig(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	res, err := h.market.GetConfig(ctx)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) updateMarketFee(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		RateBps int64 `json:"rateBps" validate:"gte=0"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	if err := h.market.UpdateMarketFee(ctx, caller, p.RateBps); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) updateDonationLimit(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		Limit string `json:"limit" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	limit, err := domain.ToBig(p.Limit)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	if err := h.market.UpdateDonationLimit(ctx, caller, limit); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}
