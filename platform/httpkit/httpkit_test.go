package httpkit

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"referral_portal_backend/platform/apperr"
	"referral_portal_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type jwtSecret string

func (s jwtSecret) GetJWTAccessSecret() string { return string(s) }

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}

func newAuthEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(AuthRequired(jwtSecret("test-secret")))
	engine.GET("/me", func(c *gin.Context) {
		userID, _ := c.Request.Context().Value(logger.UserIDKey).(string)
		OK(c, gin.H{"userId": userID})
	})
	return engine
}

func TestAuthRequiredAcceptsAccessToken(t *testing.T) {
	userID := uuid.New()
	token := signToken(t, "test-secret", jwt.MapClaims{
		"sub":  userID.String(),
		"type": "access",
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	newAuthEngine().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.UserID != userID.String() {
		t.Fatalf("unexpected identity: %+v", body)
	}
}

func TestAuthRequiredRejectsBadTokens(t *testing.T) {
	cases := map[string]string{
		"missing":      "",
		"wrong secret": "Bearer " + signToken(t, "other", jwt.MapClaims{"sub": uuid.NewString(), "type": "access"}),
		"refresh type": "Bearer " + signToken(t, "test-secret", jwt.MapClaims{"sub": uuid.NewString(), "type": "refresh"}),
		"bad subject":  "Bearer " + signToken(t, "test-secret", jwt.MapClaims{"sub": "nope", "type": "access"}),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			rec := httptest.NewRecorder()
			newAuthEngine().ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestRequestIDGeneratesAndPropagates(t *testing.T) {
	engine := gin.New()
	engine.Use(RequestID())
	var seen string
	engine.GET("/", func(c *gin.Context) {
		seen, _ = c.Request.Context().Value(logger.RequestIDKey).(string)
		c.Status(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if _, err := uuid.Parse(generated); err != nil || seen != generated {
		t.Fatalf("expected generated request id on header and context, got header=%q ctx=%q", generated, seen)
	}

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != incoming || seen != incoming {
		t.Fatalf("expected incoming request id to be reused")
	}
}

func TestRateLimitBlocksAfterBurst(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2, logger.Discard())
	engine := gin.New()
	engine.Use(limiter.RateLimit())
	engine.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusNoContent || codes[1] != http.StatusNoContent || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence: %v", codes)
	}
}

func TestHandleErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperr.Validation("bad input"), http.StatusBadRequest},
		{apperr.Wrap(apperr.KindCanceled, "canceled", errors.New("ctx")), http.StatusRequestTimeout},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		if !HandleError(c, tc.err) {
			t.Fatalf("expected error to be handled")
		}
		if rec.Code != tc.code {
			t.Fatalf("expected %d for %v, got %d", tc.code, tc.err, rec.Code)
		}
	}

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if HandleError(c, nil) {
		t.Fatalf("expected nil error to be ignored")
	}
}
