package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apphttp "offerte_backend/internal/http"
	"offerte_backend/platform/httpkit"
	"offerte_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type testConfig struct{}

func (testConfig) GetHTTPAddr() string                    { return ":0" }
func (testConfig) GetCORSAllowAll() bool                  { return false }
func (testConfig) GetCORSOrigins() []string               { return []string{"https://example.nl"} }
func (testConfig) GetCORSAllowCreds() bool                { return false }
func (testConfig) GetSessionTTL() time.Duration           { return time.Hour }
func (testConfig) GetSessionSweepInterval() time.Duration { return time.Minute }
func (testConfig) GetIntakeRateLimitPerMinute() int       { return 60 }

type pingModule struct{}

func (pingModule) Name() string { return "ping" }
func (pingModule) RegisterRoutes(ctx *apphttp.RouterContext) {
	g := ctx.V1.Group("/ping")
	g.Use(ctx.IntakeRateLimiter.RateLimit())
	g.GET("", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return New(&apphttp.App{
		Config:  testConfig{},
		Logger:  logger.Discard(),
		Modules: []apphttp.Module{pingModule{}},
	})
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if rec.Header().Get(httpkit.HeaderRequestID) == "" {
		t.Error("missing request id header")
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("missing security headers")
	}
}

func TestModuleRoutesMounted(t *testing.T) {
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong" {
		t.Fatalf("status %d body %q", rec.Code, rec.Body.String())
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/ping", nil)
	req.Header.Set("Origin", "https://example.nl")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	newEngine().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.nl" {
		t.Errorf("allow origin = %q", got)
	}
}
