package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) listRecords(c echo.Context) error {
	list, err := s.records.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, newRecordResponse))
}

func (s *HTTPServer) createRecord(c echo.Context) error {
	var req recordRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	in, err := req.validate()
	if err != nil {
		return err
	}

	rec, err := s.records.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newRecordResponse(rec))
}

func (s *HTTPServer) getRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	rec, err := s.records.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newRecordResponse(rec))
}

func (s *HTTPServer) deleteRecord(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.records.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": id})
}
