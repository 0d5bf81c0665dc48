package alert

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	corealert "github.com/gridwerk/microgrid/core/alert"
)

func TestWebhookEscalate(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type %s", ct)
		}
		b, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(b, &body); err != nil {
			t.Errorf("payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	e := NewWebhookEscalator(srv.URL)
	a := corealert.Alert{
		ID:        "alert_1",
		Type:      corealert.TypeEquipmentFailure,
		Severity:  corealert.SeverityCritical,
		Message:   "inverter offline",
		Timestamp: time.Now(),
	}
	if err := e.Escalate(a); err != nil {
		t.Fatalf("escalate: %v", err)
	}
	text, _ := body["text"].(string)
	if !strings.Contains(text, "inverter offline") {
		t.Fatalf("payload text %q", text)
	}
}

func TestWebhookEscalateNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := NewWebhookEscalator(srv.URL)
	if err := e.Escalate(corealert.Alert{Message: "x"}); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestWebhookEscalateUnreachable(t *testing.T) {
	e := NewWebhookEscalator("http://127.0.0.1:1/hook")
	if err := e.Escalate(corealert.Alert{Message: "x"}); err == nil {
		t.Fatalf("expected connection error")
	}
}
