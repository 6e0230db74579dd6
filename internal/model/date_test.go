package model

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDateRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"", "2024-13-01", "2023-02-29", "2024/01/01", "2024-01-01T10:00:00Z", " 2024-01-01"} {
		if _, err := ParseDate(raw); !errors.Is(err, ErrInvalidDateFormat) {
			t.Fatalf("parse %q: expected ErrInvalidDateFormat, got %v", raw, err)
		}
	}
}

func TestDateOfDropsClock(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	d := DateOf(time.Date(2024, 3, 10, 23, 30, 0, 0, loc))
	if d.String() != "2024-03-10" {
		t.Fatalf("unexpected date: %s", d)
	}
}

func TestDaysSinceIsAntisymmetric(t *testing.T) {
	a := MustParseDate("2024-02-27")
	b := MustParseDate("2024-03-02")
	if got := b.DaysSince(a); got != 4 {
		t.Fatalf("days since = %d, want 4", got)
	}
	if a.DaysSince(b) != -b.DaysSince(a) {
		t.Fatal("days since must be antisymmetric")
	}
	if a.DaysSince(a) != 0 {
		t.Fatal("days since self must be zero")
	}
}

func TestDateJSON(t *testing.T) {
	var payload struct {
		When Date `json:"when"`
	}
	if err := json.Unmarshal([]byte(`{"when":"2025-06-01"}`), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"when":"2025-06-01"}` {
		t.Fatalf("unexpected json: %s", out)
	}
	if err := json.Unmarshal([]byte(`{"when":"June 1"}`), &payload); !errors.Is(err, ErrInvalidDateFormat) {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}
