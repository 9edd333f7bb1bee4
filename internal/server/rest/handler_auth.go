package rest

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/config"
	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) login(c echo.Context) error {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	pair, err := s.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	if s.useCookies() {
		s.setCookie(c, common.AccessTokenCookieName, pair.AccessToken)
		s.setCookie(c, common.RefreshTokenCookieName, pair.RefreshToken)
		return c.JSON(http.StatusOK, messageResponse{Msg: "Successfully login"})
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: pair.AccessToken, RefreshToken: pair.RefreshToken})
}

// refresh runs behind the refresh-token middleware.
func (s *HTTPServer) refresh(c echo.Context) error {
	access, err := s.users.RefreshToken(s.presentedToken(c))
	if err != nil {
		return err
	}

	if s.useCookies() {
		s.setCookie(c, common.AccessTokenCookieName, access)
		return c.JSON(http.StatusOK, messageResponse{Msg: "The token has been refreshed"})
	}
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: access})
}

// logout only clears the cookie carriers. Tokens are stateless and there is
// no revocation list, so a copied token stays valid until it expires.
func (s *HTTPServer) logout(c echo.Context) error {
	if s.useCookies() {
		s.clearCookie(c, common.AccessTokenCookieName)
		s.clearCookie(c, common.RefreshTokenCookieName)
	}
	return c.JSON(http.StatusOK, messageResponse{Msg: "Successfully logout"})
}

func (s *HTTPServer) useCookies() bool {
	return s.tokenLocation == config.TokenLocationCookies
}

// presentedToken returns the raw refresh token the middleware accepted.
func (s *HTTPServer) presentedToken(c echo.Context) string {
	if s.useCookies() {
		if ck, err := c.Cookie(common.RefreshTokenCookieName); err == nil {
			return ck.Value
		}
		return ""
	}
	h := c.Request().Header.Get(common.AuthorizationHeaderName)
	if len(h) > len(common.BearerPrefix) {
		return h[len(common.BearerPrefix):]
	}
	return ""
}

func (s *HTTPServer) setCookie(c echo.Context, name, value string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *HTTPServer) clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
