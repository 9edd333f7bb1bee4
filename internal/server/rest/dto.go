package rest

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/services"
	"github.com/labstack/echo/v4"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r credentialsRequest) validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return common.NewValidationError("username", "is required")
	}
	if r.Password == "" {
		return common.NewValidationError("password", "is required")
	}
	return nil
}

// userResponse never carries the password hash.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.UserName}
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

type messageResponse struct {
	Msg string `json:"msg"`
}

// recordRequest uses pointers so that a missing count is told apart from 0.
type recordRequest struct {
	Date       string `json:"date"`
	Country    string `json:"country"`
	Cases      *int64 `json:"cases"`
	Deaths     *int64 `json:"deaths"`
	Recoveries *int64 `json:"recoveries"`
}

func (r recordRequest) validate() (services.RecordInput, error) {
	if r.Date == "" {
		return services.RecordInput{}, common.NewValidationError("date", "is required")
	}
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return services.RecordInput{}, common.NewValidationError("date", "must be a YYYY-MM-DD date")
	}

	for _, f := range []struct {
		name string
		v    *int64
	}{{"cases", r.Cases}, {"deaths", r.Deaths}, {"recoveries", r.Recoveries}} {
		if f.v == nil {
			return services.RecordInput{}, common.NewValidationError(f.name, "is required")
		}
	}

	in := services.RecordInput{
		Date:       date,
		Country:    r.Country,
		Cases:      *r.Cases,
		Deaths:     *r.Deaths,
		Recoveries: *r.Recoveries,
	}
	return in, in.Validate()
}

type recordResponse struct {
	ID         int64  `json:"id"`
	Date       string `json:"date"`
	Country    string `json:"country"`
	Cases      int64  `json:"cases"`
	Deaths     int64  `json:"deaths"`
	Recoveries int64  `json:"recoveries"`
}

func newRecordResponse(r *models.Record) recordResponse {
	return recordResponse{
		ID:         r.ID,
		Date:       r.Date.Format(models.DateLayout),
		Country:    r.Country,
		Cases:      r.Cases,
		Deaths:     r.Deaths,
		Recoveries: r.Recoveries,
	}
}

type noteRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (r noteRequest) validate() (services.NoteInput, error) {
	in := services.NoteInput{Title: r.Title, Body: r.Body}
	return in, in.Validate()
}

type noteResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

func newNoteResponse(n *models.Note) noteResponse {
	return noteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Body:       n.Body,
		CreatedAt:  n.CreatedAt,
		ModifiedAt: n.ModifiedAt,
	}
}

// bindJSON decodes the request body into dst, reporting any decoding
// failure as a validation error.
func bindJSON(c echo.Context, dst any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dst); err != nil {
		return common.NewValidationError("", "malformed request body")
	}
	return nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, common.NewValidationError("id", "must be an integer")
	}
	return id, nil
}

func mapSlice[T, R any](in []T, f func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}
