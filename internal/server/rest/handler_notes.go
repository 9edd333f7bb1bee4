package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (s *HTTPServer) listNotes(c echo.Context) error {
	list, err := s.notes.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapSlice(list, newNoteResponse))
}

func (s *HTTPServer) createNote(c echo.Context) error {
	var req noteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	in, err := req.validate()
	if err != nil {
		return err
	}

	n, err := s.notes.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newNoteResponse(n))
}

func (s *HTTPServer) getNote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	n, err := s.notes.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newNoteResponse(n))
}

func (s *HTTPServer) updateNote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req noteRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	in, err := req.validate()
	if err != nil {
		return err
	}

	n, err := s.notes.Update(c.Request().Context(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newNoteResponse(n))
}

func (s *HTTPServer) deleteNote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := s.notes.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int64{"deleted": id})
}
