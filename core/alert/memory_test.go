package alert

import (
	"testing"
	"time"
)

func TestMemoryStoreTTL(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	old := Alert{ID: "alert_old", Status: StatusActive, Timestamp: base.Add(-2 * time.Hour)}
	fresh := Alert{ID: "alert_fresh", Status: StatusActive, Timestamp: base.Add(-time.Minute)}
	if err := s.Put(old); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(fresh); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, ok, _ := s.Get("alert_old"); ok {
		t.Fatalf("expired alert still retrievable")
	}
	if _, ok, _ := s.Get("alert_fresh"); !ok {
		t.Fatalf("fresh alert lost")
	}
}

func TestMemoryStoreActiveOrder(t *testing.T) {
	s := NewMemoryStore(time.Hour)
	base := time.Now()
	for i, id := range []string{"alert_a", "alert_b", "alert_c"} {
		a := Alert{ID: id, Status: StatusActive, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		if err := s.Put(a); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	active, err := s.Active("")
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("count: %d", len(active))
	}
	if active[0].ID != "alert_c" || active[2].ID != "alert_a" {
		t.Fatalf("order: %v %v %v", active[0].ID, active[1].ID, active[2].ID)
	}
}

func TestMemoryStoreZeroTTLDefaultsToHour(t *testing.T) {
	s := NewMemoryStore(0)
	if s.ttl != time.Hour {
		t.Fatalf("ttl: %v", s.ttl)
	}
}
