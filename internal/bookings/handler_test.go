package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-scheduling/backend/internal/middleware"
)

type fakeLister struct {
	viewer Viewer
	in     ListInput
	res    *ListResult
	err    error
}

func (f *fakeLister) List(_ context.Context, v Viewer, in ListInput) (*ListResult, error) {
	f.viewer, f.in = v, in
	return f.res, f.err
}

func newTestRouter(l Lister) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/bookings", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, 7)
		c.Set(middleware.ContextUserEmail, "me@example.com")
		c.Next()
	}, NewHandler(l, nil).List)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func get(t *testing.T, r http.Handler, url string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandlerList(t *testing.T) {
	next := 3
	l := &fakeLister{res: &ListResult{
		Bookings:      []EnrichedBooking{{ID: 1, UID: "b1"}},
		RecurringInfo: []RecurringSeriesSummary{},
		NextCursor:    &next,
	}}
	w, body := get(t, newTestRouter(l),
		"/bookings?status=past&teamIds=1,2&teamIds=3&userIds=9&limit=2&cursor=4&afterStartDate=2024-05-01T00:00:00Z&beforeEndDate=2024-06-01T00:00:00%2B02:00")

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.Equal(t, Viewer{ID: 7, Email: "me@example.com"}, l.viewer)
	assert.Equal(t, StatusPast, l.in.Filters.Status)
	assert.Equal(t, []int{1, 2, 3}, l.in.Filters.TeamIDs)
	assert.Equal(t, []int{9}, l.in.Filters.UserIDs)
	assert.Nil(t, l.in.Filters.EventTypeIDs)
	require.NotNil(t, l.in.Limit)
	assert.Equal(t, 2, *l.in.Limit)
	require.NotNil(t, l.in.Cursor)
	assert.Equal(t, 4, *l.in.Cursor)
	require.NotNil(t, l.in.Filters.AfterStartDate)
	assert.True(t, l.in.Filters.AfterStartDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, l.in.Filters.BeforeEndDate)
	assert.True(t, l.in.Filters.BeforeEndDate.Equal(time.Date(2024, 5, 31, 22, 0, 0, 0, time.UTC)))

	var data struct {
		Bookings      []map[string]any `json:"bookings"`
		RecurringInfo []any            `json:"recurringInfo"`
		NextCursor    *int             `json:"nextCursor"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &data))
	require.Len(t, data.Bookings, 1)
	assert.Equal(t, "b1", data.Bookings[0]["uid"])
	require.NotNil(t, data.NextCursor)
	assert.Equal(t, 3, *data.NextCursor)
}

func TestHandlerList_NullCursor(t *testing.T) {
	l := &fakeLister{res: &ListResult{Bookings: []EnrichedBooking{}, RecurringInfo: []RecurringSeriesSummary{}}}
	_, body := get(t, newTestRouter(l), "/bookings?status=upcoming")
	assert.JSONEq(t, `{"bookings":[],"recurringInfo":[],"nextCursor":null}`, string(body.Data))
	assert.Nil(t, l.in.Limit)
	assert.Nil(t, l.in.Cursor)
}

func TestHandlerList_BadRequest(t *testing.T) {
	l := &fakeLister{res: &ListResult{}}
	for _, url := range []string{
		"/bookings",
		"/bookings?status=all",
		"/bookings?status=past&limit=0",
		"/bookings?status=past&cursor=-1",
		"/bookings?status=past&limit=ten",
		"/bookings?status=past&teamIds=1,x",
		"/bookings?status=past&afterStartDate=yesterday",
	} {
		w, body := get(t, newTestRouter(l), url)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)
		assert.False(t, body.Success, url)
	}
}

func TestHandlerList_Errors(t *testing.T) {
	cases := map[string]struct {
		err  error
		code int
	}{
		"page":       {ErrInvalidPage, http.StatusBadRequest},
		"query":      {&QueryError{Op: PathOwner, Err: errors.New("down")}, http.StatusInternalServerError},
		"validation": {&ValidationError{BookingID: 1, Field: "metadata", Err: errors.New("bad")}, http.StatusInternalServerError},
	}
	for name, tc := range cases {
		w, body := get(t, newTestRouter(&fakeLister{err: tc.err}), "/bookings?status=upcoming&limit=500")
		assert.Equal(t, tc.code, w.Code, name)
		assert.False(t, body.Success, name)
	}
}
