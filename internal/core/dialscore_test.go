// ABOUTME: Unit tests for dial alignment scoring
// ABOUTME: Covers neutral fallbacks and directional agreement
package core

import (
	"math"
	"testing"

	"github.com/harper/dialrag/internal/models"
)

func TestAlignmentScore(t *testing.T) {
	tests := []struct {
		name string
		user models.DialVector
		doc  models.DialVector
		want float64
	}{
		{
			name: "identical dials score perfectly",
			user: models.DialVector{"love": 0.9, "trust": 0.3},
			doc:  models.DialVector{"love": 0.9, "trust": 0.3},
			want: 1.0,
		},
		{
			name: "proportional dials score perfectly",
			user: models.DialVector{"love": 0.4, "trust": 0.2},
			doc:  models.DialVector{"love": 0.8, "trust": 0.4},
			want: 1.0,
		},
		{
			name: "no shared dimensions is neutral",
			user: models.DialVector{"love": 0.9},
			doc:  models.DialVector{"trust": 0.9},
			want: models.NeutralDialValue,
		},
		{
			name: "empty user dials is neutral",
			user: models.DialVector{},
			doc:  models.DialVector{"love": 0.9},
			want: models.NeutralDialValue,
		},
		{
			name: "zero-norm user vector is neutral",
			user: models.DialVector{"love": 0, "trust": 0},
			doc:  models.DialVector{"love": 0.9, "trust": 0.1},
			want: models.NeutralDialValue,
		},
		{
			name: "zero-norm doc vector is neutral",
			user: models.DialVector{"love": 0.9},
			doc:  models.DialVector{"love": 0},
			want: models.NeutralDialValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AlignmentScore(tt.user, tt.doc)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("AlignmentScore() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlignmentScore_PrefersAlignedDocuments(t *testing.T) {
	user := models.DialVector{"love": 0.9, "trust": 0.1}

	aligned := AlignmentScore(user, models.DialVector{"love": 0.9, "trust": 0.1})
	middling := AlignmentScore(user, models.DialVector{"love": 0.5, "trust": 0.5})
	opposed := AlignmentScore(user, models.DialVector{"love": 0.1, "trust": 0.9})

	if !(aligned > middling && middling > opposed) {
		t.Errorf("expected aligned > middling > opposed, got %v, %v, %v",
			aligned, middling, opposed)
	}
}

func TestAlignmentScore_IgnoresExtraDimensions(t *testing.T) {
	user := models.DialVector{"love": 0.8, "trust": 0.2}
	doc := models.DialVector{"love": 0.8, "trust": 0.2, "growth": 0.95}

	if got := AlignmentScore(user, doc); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("AlignmentScore() = %v, want 1.0 over the shared dimensions", got)
	}
}

func TestAlignmentScore_Bounded(t *testing.T) {
	user := models.DialVector{"love": 1.0, "trust": 0.0, "growth": 0.3}
	docs := []models.DialVector{
		{"love": 0.0, "trust": 1.0},
		{"love": 1.0, "growth": 0.3},
		{"love": 0.2, "trust": 0.2, "growth": 0.2},
	}

	for _, doc := range docs {
		got := AlignmentScore(user, doc)
		if got < 0 || got > 1 {
			t.Errorf("AlignmentScore(%v) = %v, want within [0,1]", doc, got)
		}
	}
}
