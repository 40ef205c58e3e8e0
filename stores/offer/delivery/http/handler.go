package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	bCtx "github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/delivery"
	"github.com/plaza-xyz/marketapi/domain"
	dOffer "github.com/plaza-xyz/marketapi/domain/offer"
	authMiddleware "github.com/plaza-xyz/marketapi/stores/auth/delivery/http/middleware"
)

type handler struct {
	offer dOffer.UseCase
}

func New(e *echo.Echo, authMw *authMiddleware.AuthMiddleware, offer dOffer.UseCase) {
	h := &handler{offer}
	g := e.Group("/offers")
	g.GET("", h.getOffers)
	g.GET("/:offerId", h.getOffer)
	g.POST("", h.makeOffer, authMw.Auth())
	g.POST("/:offerId/fill", h.fillOffer, authMw.Auth())
	g.DELETE("/:offerId", h.cancelOffer, authMw.Auth())
	g.PATCH("/:offerId", h.updateOffer, authMw.Auth())
}

func (h *handler) getOffers(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		Owner   *domain.Address `query:"owner"`
		AssetId *domain.AssetId `query:"assetId"`
		Open    *bool           `query:"open"`
		Offset  int32           `query:"offset"`
		Limit   int32           `query:"limit"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	opts := []dOffer.FindAllOptionsFunc{
		dOffer.WithPagination(p.Offset, p.Limit),
	}
	if p.Owner != nil {
		opts = append(opts, dOffer.WithOwner(*p.Owner))
	}
	if p.AssetId != nil {
		opts = append(opts, dOffer.WithAssetId(*p.AssetId))
	}
	if p.Open != nil {
		opts = append(opts, dOffer.WithOpen(*p.Open))
	}

	res, err := h.offer.List(ctx, opts...)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) getOffer(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	type params struct {
		OfferId int64 `param:"offerId"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	res, err := h.offer.Get(ctx, p.OfferId)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, res)
}

func (h *handler) makeOffer(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		AssetId domain.AssetId `json:"assetId" validate:"required"`
		Price   string         `json:"price" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	price, err := domain.ToBig(p.Price)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	res, err := h.offer.Make(ctx, caller, p.AssetId, price)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusCreated, res)
}

func (h *handler) fillOffer(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		OfferId       int64  `param:"offerId"`
		AttachedValue string `json:"attachedValue"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	attached, err := domain.ToBig(p.AttachedValue)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	if err := h.offer.Fill(ctx, caller, p.OfferId, attached); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) cancelOffer(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		OfferId int64 `param:"offerId"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}

	if err := h.offer.Cancel(ctx, caller, p.OfferId); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}

func (h *handler) updateOffer(_ctx echo.Context) error {
	ctx := _ctx.Get("ctx").(bCtx.Ctx)
	caller := _ctx.Get("address").(domain.Address)
	type params struct {
		OfferId int64  `param:"offerId"`
		Price   string `json:"price" validate:"required"`
	}

	p := &params{}
	if err := _ctx.Bind(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, "invalid params")
	}
	if err := _ctx.Validate(p); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	price, err := domain.ToBig(p.Price)
	if err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusBadRequest, err)
	}

	if err := h.offer.Update(ctx, caller, p.OfferId, price); err != nil {
		return delivery.MakeJsonResp(_ctx, http.StatusInternalServerError, err)
	}
	return delivery.MakeJsonResp(_ctx, http.StatusOK, "ok")
}
