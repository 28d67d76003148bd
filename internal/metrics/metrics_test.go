package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	srv := httptest.NewServer(m.NewServer("").Handler)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	return string(body)
}

func TestMetricsExposition(t *testing.T) {
	m := New()

	m.FlightFinished("landed", 100)
	m.FlightFinished("crashed", 40)
	m.FlightFinished("crashed", 50)
	m.SessionStarted()
	m.SessionStarted()
	m.SessionEnded()

	body := scrape(t, m)

	want := []string{
		`lander_flights_total{outcome="landed"} 1`,
		`lander_flights_total{outcome="crashed"} 2`,
		`lander_flight_ticks_count 3`,
		`lander_ssh_sessions_active 1`,
		`lander_ssh_sessions_total 2`,
	}
	for _, line := range want {
		if !strings.Contains(body, line) {
			t.Errorf("exposition missing %q", line)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	// Must not panic
	m.FlightFinished("landed", 1)
	m.SessionStarted()
	m.SessionEnded()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 404 {
		t.Errorf("nil Handler() status = %d, want 404", rec.Code)
	}
}

func TestSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.FlightFinished("landed", 10)

	if strings.Contains(scrape(t, b), `lander_flights_total{outcome="landed"} 1`) {
		t.Error("collectors leaked between instances")
	}
}
