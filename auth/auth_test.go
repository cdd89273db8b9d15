package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/cleitonzila/n64-checklist/apperr"
	"github.com/cleitonzila/n64-checklist/db/dbtest"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	passwordCost = bcrypt.MinCost
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, VerifyPassword("password123", hash))
	assert.False(t, VerifyPassword("password124", hash))
	assert.False(t, VerifyPassword("password123", "not-a-hash"))
}

func TestSessionsIssueAndParse(t *testing.T) {
	s := NewSessions("secret", time.Hour)
	token, err := s.Issue("user-1", "admin")
	require.NoError(t, err)

	claims, err := s.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "admin", claims.Name)

	_, err = NewSessions("other", time.Hour).Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionsRejectExpired(t *testing.T) {
	s := NewSessions("secret", time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := s.Issue("user-1", "admin")
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionsRejectOtherAlgorithms(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewSessions("secret", time.Hour).Parse(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func newRouter(s *Sessions) *gin.Engine {
	r := gin.New()
	r.Use(s.Session())
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": UserID(c)})
	})
	r.POST("/write", RequireUser(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestSessionMiddleware(t *testing.T) {
	s := NewSessions("secret", time.Hour)
	token, err := s.Issue("user-1", "admin")
	require.NoError(t, err)
	r := newRouter(s)

	tests := []struct {
		name   string
		setup  func(*http.Request)
		method string
		path   string
		status int
		body   string
	}{
		{"anonymous read", func(*http.Request) {}, http.MethodGet, "/whoami", http.StatusOK, `{"id":""}`},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.MethodGet, "/whoami", http.StatusOK, `{"id":"user-1"}`},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: token}) }, http.MethodGet, "/whoami", http.StatusOK, `{"id":"user-1"}`},
		{"garbage token is anonymous", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.MethodGet, "/whoami", http.StatusOK, `{"id":""}`},
		{"anonymous write", func(*http.Request) {}, http.MethodPost, "/write", http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"authenticated write", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.MethodPost, "/write", http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.body != "" {
				assert.JSONEq(t, tt.body, rec.Body.String())
			}
		})
	}
}

func TestAuthenticator(t *testing.T) {
	_, _, conn := dbtest.Stores(t)
	a := NewAuthenticator(conn)
	ctx := context.Background()

	created, err := a.UpsertUser(ctx, "admin", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	user, err := a.Authenticate(ctx, "admin", "password123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = a.Authenticate(ctx, "admin", "wrong-password")
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))
	_, err = a.Authenticate(ctx, "nobody", "password123")
	assert.True(t, apperr.Is(err, apperr.KindAuthorization))

	again, err := a.UpsertUser(ctx, "admin", "new-password")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	_, err = a.Authenticate(ctx, "admin", "new-password")
	assert.NoError(t, err)
}
