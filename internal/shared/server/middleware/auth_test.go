package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"smarthealth-backend/internal/shared/auth"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth("dev"))
	r.GET("/api/v1/risk-checks", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserIDFromContext(c)})
	})
	r.POST("/api/v1/risk-checks", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"userId": UserIDFromContext(c)})
	})
	return r
}

func TestAuthGuestHeaderSetsGuestIdentity(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"userId":"guest:abc"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthRejectsMissingIdentityOnProtectedRoute(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAllowsAnonymousSubmission(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/risk-checks", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"userId":""}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestAuthRejectsMalformedBearerToken(t *testing.T) {
	router := newAuthRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthAcceptsSignedToken(t *testing.T) {
	router := newAuthRouter()

	token, err := auth.SignJWT(auth.Claims{Sub: "google:123", Email: "a@b.c"})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/risk-checks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"userId":"google:123"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}
