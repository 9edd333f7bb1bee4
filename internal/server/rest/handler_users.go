package rest

import (
	"net/http"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/auth"
	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) createUser(c echo.Context) error {
	var req credentialsRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	u, err := s.users.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	s.logger.Info(c.Request().Context(), "Registered", "username", u.UserName)
	return c.JSON(http.StatusCreated, newUserResponse(u))
}

func (s *HTTPServer) listUsers(c echo.Context) error {
	list, err := s.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, newUserResponse))
}

func (s *HTTPServer) currentUser(c echo.Context) error {
	ctx := c.Request().Context()

	subject, ok := auth.SubjectFromContext(ctx)
	if !ok {
		return common.ErrorUnauthorized
	}

	u, err := s.users.FindByUsername(ctx, subject)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newUserResponse(u))
}

func (s *HTTPServer) deleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": id})
}
