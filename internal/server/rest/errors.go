package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/labstack/echo/v4"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

// statusFor maps an error returned by a handler or middleware to the HTTP
// status and the message shown to the client. Unknown errors become a
// generic 500 so internals never leak.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	var ve *common.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, common.ErrorConflict):
		return http.StatusConflict, "already exists"
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusBadRequest, "bad username or password"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "token has expired"
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenTypeMismatch):
		return http.StatusUnauthorized, "unauthorized"
	}

	return http.StatusInternalServerError, "internal error"
}

func (s *HTTPServer) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code, msg := statusFor(err)
	if code >= http.StatusInternalServerError {
		s.logger.Error(c.Request().Context(), "request error", "error", err.Error(), "uri", c.Request().RequestURI)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = c.JSON(code, errorResponse{Detail: msg})
	}
	if err != nil {
		s.logger.Error(c.Request().Context(), "write error response", "error", err.Error())
	}
}
