package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sieve-hq/sieve/pkg/classifier"
	"sieve-hq/sieve/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// Helper function to create test config
func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:       true,
		ListenAddress: "127.0.0.1:0",
		Path:          "/metrics",
		Namespace:     "test",
		Subsystem:     "sieve",
	}
}

func testResult() *classifier.Result {
	return &classifier.Result{
		Args: []string{"src"},
		Options: []classifier.ParsedOption{
			{Name: "all"},
			{Name: "long"},
			{Name: "all"},
		},
		Diagnostics: []classifier.Diagnostic{
			{Kind: classifier.KindUnknownOption, Token: "--colour"},
			{Kind: classifier.KindUnknownOption, Token: "-z"},
			{Kind: classifier.KindEmptyOptionToken, Token: "--"},
		},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
	if !collector.Enabled() {
		t.Error("Enabled() = false, want true")
	}
}

func TestCollector_DefaultNames(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != "sieve" || cfg.Subsystem != "classifier" {
		t.Errorf("names = %q/%q, want sieve/classifier", cfg.Namespace, cfg.Subsystem)
	}
}

func TestCollector_RecordRun(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordRun(5, testResult(), 3*time.Microsecond)
	collector.RecordRun(1, &classifier.Result{Args: []string{"x"}}, time.Microsecond)

	rm := collector.runMetrics
	if got := testutil.ToFloat64(rm.runsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("runs_total{error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.runsTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("runs_total{ok} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(rm.tokensTotal); got != 6 {
		t.Errorf("tokens_total = %v, want 6", got)
	}
	if got := testutil.ToFloat64(rm.argsTotal); got != 2 {
		t.Errorf("args_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rm.diagnostics.WithLabelValues(string(classifier.KindUnknownOption))); got != 2 {
		t.Errorf("diagnostics_total{unknown_option} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rm.parsedOptions.WithLabelValues("all")); got != 2 {
		t.Errorf("parsed_options_total{all} = %v, want 2", got)
	}
	if got := testutil.CollectAndCount(rm.runDuration); got != 1 {
		t.Errorf("run_duration_seconds series = %d, want 1", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordRun(5, testResult(), time.Millisecond)
	collector.RecordSchemaLoad("yaml", 3, nil)
	collector.RecordHistorySave(nil)

	if got := testutil.CollectAndCount(collector.runMetrics.runsTotal); got != 0 {
		t.Errorf("runs_total series = %d, want 0 when disabled", got)
	}
	if got := testutil.ToFloat64(collector.schemaMetrics.options); got != 0 {
		t.Errorf("schema_options = %v, want 0 when disabled", got)
	}
}

func TestCollector_SchemaMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	sm := collector.schemaMetrics

	collector.RecordSchemaLoad("toml", 7, nil)
	collector.RecordSchemaLoad("toml", 99, errors.New("bad schema"))
	collector.RecordSchemaReload(nil)
	collector.RecordSchemaReload(errors.New("bad schema"))
	collector.RecordSchemaReload(errors.New("bad schema"))

	if got := testutil.ToFloat64(sm.loadsTotal.WithLabelValues("toml", "success")); got != 1 {
		t.Errorf("schema_loads_total{toml,success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(sm.loadsTotal.WithLabelValues("toml", "failure")); got != 1 {
		t.Errorf("schema_loads_total{toml,failure} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(sm.options); got != 7 {
		t.Errorf("schema_options = %v, want 7 (failed loads keep the previous value)", got)
	}
	if got := testutil.ToFloat64(sm.reloadsTotal.WithLabelValues("failure")); got != 2 {
		t.Errorf("schema_reloads_total{failure} = %v, want 2", got)
	}
}

func TestCollector_HistoryMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	hm := collector.historyMetrics

	collector.RecordHistorySave(nil)
	collector.RecordHistorySave(errors.New("disk full"))
	collector.RecordHistoryPrune("age", 4)
	collector.RecordHistoryPrune("count", 2)
	collector.RecordHistoryPrune("age", 1)
	collector.UpdateHistorySize(42)

	if got := testutil.ToFloat64(hm.savesTotal.WithLabelValues("success")); got != 1 {
		t.Errorf("history_saves_total{success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(hm.prunedTotal.WithLabelValues("age")); got != 5 {
		t.Errorf("history_pruned_total{age} = %v, want 5", got)
	}
	if got := testutil.ToFloat64(hm.records); got != 42 {
		t.Errorf("history_records = %v, want 42", got)
	}
}

func TestCardinalityLimiter(t *testing.T) {
	cl := NewCardinalityLimiter(2)

	if !cl.Allow("a") || !cl.Allow("b") {
		t.Fatal("first two label sets should be allowed")
	}
	if !cl.Allow("a") {
		t.Error("existing label set should be allowed")
	}
	if cl.Allow("c") {
		t.Error("third label set should be rejected")
	}
	if cl.Count() != 2 {
		t.Errorf("Count() = %d, want 2", cl.Count())
	}
}

func TestCollector_OptionOverflow(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.cardinalityLimiter = NewCardinalityLimiter(1)

	collector.RecordRun(2, &classifier.Result{
		Options: []classifier.ParsedOption{{Name: "all"}, {Name: "long"}},
	}, time.Microsecond)

	if got := testutil.ToFloat64(collector.runMetrics.parsedOptions.WithLabelValues("other")); got != 1 {
		t.Errorf("parsed_options_total{other} = %v, want 1", got)
	}
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordRun(3, testResult(), time.Microsecond)

	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`test_sieve_runs_total{status="error"} 1`,
		`test_sieve_diagnostics_total{kind="unknown_option"} 2`,
		"test_sieve_run_duration_seconds",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	srv, err := collector.NewServer()
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics error = %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), "test_sieve_schema_options") {
		t.Error("metrics body missing schema_options")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve() did not return after cancel")
	}
}

func TestNewServer_BadAddress(t *testing.T) {
	cfg := testConfig()
	cfg.ListenAddress = "256.0.0.1:bad"
	if _, err := NewCollector(cfg, nil).NewServer(); err == nil {
		t.Error("NewServer() error = nil, want error")
	}
}
