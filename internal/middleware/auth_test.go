package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/arsh246/weather-app/internal/errs"
)

type fakeVerifier struct {
	uid string
	err error
}

func (f *fakeVerifier) Verify(_ context.Context, token string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.uid, nil
}

func authTestRouter(v *fakeVerifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired(v), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": UserID(c.Request.Context())})
	})
	return r
}

func TestAuthRequiredMissingToken(t *testing.T) {
	r := authTestRouter(&fakeVerifier{uid: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredRejectedToken(t *testing.T) {
	r := authTestRouter(&fakeVerifier{err: fmt.Errorf("%w: expired", errs.ErrUnauthenticated)})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRequiredBearerHeader(t *testing.T) {
	r := authTestRouter(&fakeVerifier{uid: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"u1"}`, w.Body.String())
}

func TestAuthRequiredQueryParamFallback(t *testing.T) {
	r := authTestRouter(&fakeVerifier{uid: "u1"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?id_token=good-token", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUserIDWithoutAuth(t *testing.T) {
	assert.Empty(t, UserID(context.Background()))
}
