package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aura-scheduling/backend/internal/models"
	"github.com/aura-scheduling/backend/pkg/utils"
)

type fakeUsers struct {
	users map[string]*models.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func newAuthRouter(t *testing.T) (*gin.Engine, *JWTService) {
	t.Helper()
	hash, err := utils.HashPassword("hunter22")
	require.NoError(t, err)
	store := &fakeUsers{users: map[string]*models.User{
		"me@example.com": {ID: 3, Email: "me@example.com", Password: hash, Name: "Me"},
	}}
	jwtSvc := NewJWTService("secret", 1)
	h := NewHandler(store, jwtSvc, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set("user_id", 3)
		c.Next()
	}, h.Me("user_id"))
	return r, jwtSvc
}

func postLogin(r http.Handler, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin(t *testing.T) {
	r, jwtSvc := newAuthRouter(t)
	w := postLogin(r, `{"email":"me@example.com","password":"hunter22"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data TokenResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data.User.ID)
	assert.NotContains(t, w.Body.String(), "hunter22")

	claims, err := jwtSvc.Validate(body.Data.Token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, "me@example.com", claims.Email)
}

func TestLogin_Rejected(t *testing.T) {
	r, _ := newAuthRouter(t)
	assert.Equal(t, http.StatusUnauthorized, postLogin(r, `{"email":"me@example.com","password":"wrong"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, postLogin(r, `{"email":"nobody@example.com","password":"hunter22"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postLogin(r, `{"email":"not-an-email","password":"x"}`).Code)
}

func TestMe(t *testing.T) {
	r, _ := newAuthRouter(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":3,"email":"me@example.com","name":"Me","timeZone":""}}`, w.Body.String())
}
