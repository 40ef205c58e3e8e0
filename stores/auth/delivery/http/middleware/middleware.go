package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/plaza-xyz/marketapi/base/ctx"
	"github.com/plaza-xyz/marketapi/base/delivery"
	"github.com/plaza-xyz/marketapi/domain"
	"github.com/plaza-xyz/marketapi/domain/market"
)

type AuthMiddleware struct {
	auth     domain.AuthUsecase
	marketUC market.AdminUseCase
}

func New(auth domain.AuthUsecase, marketUC market.AdminUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		auth:     auth,
		marketUC: marketUC,
	}
}

func (m *AuthMiddleware) Auth() echo.MiddlewareFunc {
	return middleware.KeyAuth(m.validateAuthToken)
}

func (m *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: func(c echo.Context) bool {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			return len(auth) == 0
		},
		Validator: m.validateAuthToken,
	})
}

// IsOperator admits only the configured operator identity. Must run after
// Auth().
func (m *AuthMiddleware) IsOperator() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Get("ctx").(ctx.Ctx)

			address := c.Get("address").(domain.Address)

			cfg, err := m.marketUC.GetConfig(ctx)
			if err != nil {
				return delivery.MakeJsonResp(c, http.StatusInternalServerError, err)
			}
			if !cfg.Operator.Equals(address) {
				return delivery.MakeJsonResp(c, http.StatusForbidden, "require operator privilege")
			}
			return next(c)
		}
	}
}

func (m *AuthMiddleware) validateAuthToken(key string, c echo.Context) (bool, error) {
	ctx := c.Get("ctx").(ctx.Ctx)
	if ads, err := m.auth.ParseToken(ctx, key); err != nil {
		ctx.WithField("err", err).Error("auth.ParseToken failed")
		return false, err
	} else {
		c.Set("address", domain.Address(ads))
		return true, nil
	}
}
