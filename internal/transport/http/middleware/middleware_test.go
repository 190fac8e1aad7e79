package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(h ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(h...)
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func TestRequestID_EchoesValidID(t *testing.T) {
	r := serve(RequestID())
	rid := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(KeyRequestID, rid)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get(KeyRequestID); got != rid {
		t.Errorf("valid id not echoed: %s", got)
	}
}

func TestRequestID_ReplacesGarbage(t *testing.T) {
	r := serve(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(KeyRequestID, "<script>alert(1)</script>")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	got := w.Header().Get(KeyRequestID)
	if uuid.Validate(got) != nil {
		t.Errorf("response id must be a fresh uuid, got %q", got)
	}
}

func TestMetrics_CountsUnderProjectNamespace(t *testing.T) {
	r := serve(Metrics())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	fams, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var found bool
	for _, f := range fams {
		if f.GetName() != "houserent_http_requests_total" {
			continue
		}
		found = true
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "route" && strings.Contains(l.GetValue(), "/ping") {
					return
				}
			}
		}
	}
	if !found {
		t.Fatal("houserent_http_requests_total not registered")
	}
	t.Error("no sample labelled with the /ping route")
}
