package domain

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestLineKey(t *testing.T) {
	if got := LineKey("p1", ""); got != "p1" {
		t.Errorf("expected p1, got %s", got)
	}
	if got := LineKey("p1", "M"); got != "p1__M" {
		t.Errorf("expected p1__M, got %s", got)
	}
	// Absent variant is its own identity
	if LineKey("p1", "") == LineKey("p1", "M") {
		t.Error("variantless key must differ from a concrete variant")
	}
}

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name  string
		qty   int
		stock *int
		want  int
	}{
		{"no limit keeps quantity", 5, nil, 5},
		{"no limit floors at one", 0, nil, 1},
		{"negative floors at one", -3, nil, 1},
		{"under the limit", 2, intPtr(5), 2},
		{"clamped to the limit", 9, intPtr(5), 5},
		{"floored then clamped", 0, intPtr(5), 1},
		{"zero stock yields zero", 3, intPtr(0), 0},
		{"negative stock yields zero", 3, intPtr(-1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampQuantity(tt.qty, tt.stock); got != tt.want {
				t.Errorf("ClampQuantity(%d) = %d, want %d", tt.qty, got, tt.want)
			}
		})
	}
}

func TestFlashOfferActiveAt(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name  string
		offer FlashOffer
		want  bool
	}{
		{"disabled", FlashOffer{Enabled: false}, false},
		{"open window", FlashOffer{Enabled: true}, true},
		{"inside window", FlashOffer{Enabled: true, StartsAt: &before, EndsAt: &after}, true},
		{"not started", FlashOffer{Enabled: true, StartsAt: &after}, false},
		{"already ended", FlashOffer{Enabled: true, EndsAt: &before}, false},
		{"only start passed", FlashOffer{Enabled: true, StartsAt: &before}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.offer.ActiveAt(now); got != tt.want {
				t.Errorf("ActiveAt = %v, want %v", got, tt.want)
			}
		})
	}
}
