package domain

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestDeriveStoryID_Deterministic(t *testing.T) {
	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := DeriveStoryID("https://example.com/a", published)
	second := DeriveStoryID("https://example.com/a", published)

	if first != second {
		t.Errorf("DeriveStoryID not deterministic: %q != %q", first, second)
	}
	if first == "" {
		t.Error("DeriveStoryID returned empty id")
	}
}

func TestDeriveStoryID_URLSafeAlphabet(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		published time.Time
	}{
		{"plain uri", "https://example.com/story", time.Date(2024, 3, 15, 12, 30, 45, 0, time.UTC)},
		{"uri with query", "https://example.com/a?b=c&d=e", time.Date(2020, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"empty uri", "", time.Time{}},
		{"unicode uri", "https://example.com/日本語", time.Now()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := DeriveStoryID(tt.uri, tt.published)
			if strings.ContainsAny(id, "+/=") {
				t.Errorf("DeriveStoryID(%q) = %q contains a non URL-safe character", tt.uri, id)
			}
		})
	}
}

func TestDeriveStoryID_DistinctInputsDistinctIDs(t *testing.T) {
	published := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	a := DeriveStoryID("https://example.com/a", published)
	b := DeriveStoryID("https://example.com/b", published)
	if a == b {
		t.Error("distinct URIs produced the same id")
	}

	later := DeriveStoryID("https://example.com/a", published.Add(time.Second))
	if a == later {
		t.Error("distinct published times produced the same id")
	}
}

func TestDeriveStoryID_Reversible(t *testing.T) {
	published := time.Date(2024, 2, 1, 8, 15, 0, 0, time.UTC)
	id := DeriveStoryID("https://example.com/x", published)

	decoded, err := base64.RawURLEncoding.DecodeString(id)
	if err != nil {
		t.Fatalf("id is not valid raw URL base64: %v", err)
	}
	want := "https://example.com/x_20240201081500"
	if string(decoded) != want {
		t.Errorf("decoded id = %q, want %q", decoded, want)
	}
}

func TestDeriveStoryID_NormalizesToUTC(t *testing.T) {
	utc := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	offset := utc.In(time.FixedZone("JST", 9*60*60))

	if DeriveStoryID("https://example.com/a", utc) != DeriveStoryID("https://example.com/a", offset) {
		t.Error("same instant in different zones produced different ids")
	}
}
