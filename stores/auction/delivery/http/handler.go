package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/delivery"
	"github.com/plaza-xyz/marketapi/domain"
	dAuction "github.com/plaza-xyz/marketapi/domain/auction"
	authMiddleware "github.com/plaza-xyz/marketapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	auction dAuction.UseCase
}

func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, auction dAuction.UseCase) {
	h := &handler{auction}
	g := e.Group("/auctions")
	g.GET("", h.getAuctions)
	g.GET("/:assetId", h.getAuction)
	g.POST("", h.makeAuction, authMw.Auth())
	g.POST("/:assetId/bids", h.makeBid, authMw.Auth())
	g.DELETE("/:assetId/bids", h.cancelBid, authMw.Auth())
	g.DELETE("/:assetId", h.cancelAuction, authMw.Auth())
	g.POST("/:assetId/settle", h.settleAuction)
}

func (h *handler) getAuctions(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)

	res, err := h.auction.GetAuctions(ctx)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		AssetId domain.AssetId `param:"assetId"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	res, err := h.auction.Get(ctx, p.AssetId)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) makeAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		AssetId     domain.AssetId `json:"assetId" validate:"required"`
		BuyNowPrice string         `json:"buyNowPrice" validate:"required"`
		PeriodHours int            `json:"periodHours" validate:"required,gt=0"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	buyNowPrice, err := domain.ToBig(p.BuyNowPrice)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	res, err := h.auction.Make(ctx, caller, p.AssetId, buyNowPrice, p.PeriodHours)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusCreated, res)
}

func (h *handler) makeBid(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		AssetId       domain.AssetId `param:"assetId"`
		AttachedValue string         `json:"attachedValue" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	attached, err := domain.ToBig(p.AttachedValue)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	if err := h.auction.Bid(ctx, caller, p.AssetId, attached); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) cancelBid(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		AssetId domain.AssetId `param:"assetId"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if err := h.auction.CancelBid(ctx, caller, p.AssetId); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) cancelAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		AssetId domain.AssetId `param:"assetId"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if err := h.auction.Cancel(ctx, caller, p.AssetId); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) settleAuction(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		AssetId domain.AssetId `param:"assetId"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if err := h.auction.Settle(ctx, p.AssetId); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}
