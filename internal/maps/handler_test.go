package maps

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"offerte_backend/platform/logger"
	"offerte_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

func TestLookupAddressValidation(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer upstream.Close()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHandler(NewService(upstream.URL, logger.Discard()), validator.New())
	engine.GET("/address-lookup", h.LookupAddress)

	tests := []struct {
		query string
		want  int
	}{
		{"", http.StatusBadRequest},
		{"?q=ab", http.StatusBadRequest},
		{"?postalCode=12AB34", http.StatusBadRequest},
		{"?postalCode=1234ab&houseNumber=12", http.StatusOK},
		{"?q=Kerkstraat+Utrecht", http.StatusOK},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/address-lookup"+tt.query, nil))
		if rec.Code != tt.want {
			t.Errorf("%q: status %d, want %d", tt.query, rec.Code, tt.want)
		}
	}
}
