package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewCollector_RegistersMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	if c == nil {
		t.Fatal("expected non-nil collector")
	}

	c.RecordAccessOutcome("valid")
	c.RecordAccessOutcome("invalid")
	c.RecordResolveLatency(5 * time.Millisecond)
	c.RecordAuditWriteFailure()
	c.RecordLinkIssued()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}

	expected := []string{
		"linkpass_access_total",
		"linkpass_resolve_latency_seconds",
		"linkpass_audit_write_failure_total",
		"linkpass_links_issued_total",
	}
	for _, name := range expected {
		if !names[name] {
			t.Errorf("expected metric %q to be registered", name)
		}
	}
}

func TestNewCollector_DuplicateRegistration_Panics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	NewCollector(reg)
}

func TestHandler_ServesPrometheusFormat(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordAccessOutcome("expired")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "linkpass_access_total") {
		t.Errorf("expected body to contain linkpass_access_total, got:\n%s", string(body))
	}
	if !strings.Contains(string(body), `outcome="expired"`) {
		t.Errorf("expected body to contain outcome label, got:\n%s", string(body))
	}
}
