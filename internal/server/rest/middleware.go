package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/auth"
	"github.com/dmitrijs2005/recordkeeper/internal/server/config"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// subjectContextKey is where the authenticated username is stored on the
// echo context.
const subjectContextKey = "subject"

func (s *HTTPServer) useMiddleware(e *echo.Echo) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				s.logger.Warn(c.Request().Context(), "request failed", append(args, "error", v.Error.Error())...)
				return nil
			}
			s.logger.Info(c.Request().Context(), "request served", args...)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,

		// reflect the caller's origin; a literal "*" is rejected by browsers
		// on credentialed requests
		UnsafeWildcardOriginWithAllowCredentials: true,
	}))
}

// requireToken rejects requests without a valid token of type typ and
// binds the token subject to the request context. Tokens come from the
// Authorization header or from the matching cookie, depending on the
// configured token location.
func (s *HTTPServer) requireToken(typ auth.TokenType) echo.MiddlewareFunc {
	lookup := "header:" + common.AuthorizationHeaderName + ":" + common.BearerPrefix
	if s.tokenLocation == config.TokenLocationCookies {
		name := common.AccessTokenCookieName
		if typ == auth.TokenTypeRefresh {
			name = common.RefreshTokenCookieName
		}
		lookup = "cookie:" + name
	}

	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: lookup,
		ContextKey:  subjectContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (any, error) {
			return s.issuer.Validate(token, typ)
		},
		SuccessHandler: func(c echo.Context) {
			subject, _ := c.Get(subjectContextKey).(string)
			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithSubject(req.Context(), subject)))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			switch {
			case errors.Is(err, common.ErrTokenExpired):
				return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
			case errors.Is(err, common.ErrTokenTypeMismatch):
				return echo.NewHTTPError(http.StatusUnauthorized, "wrong token type")
			case errors.Is(err, common.ErrInvalidToken):
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		},
	})
}
