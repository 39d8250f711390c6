package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Anna", "Anna"},
		{"  Anna  ", "Anna"},
		{"Anna   Maria", "Anna Maria"},
		{"Núria", "Nuria"},
		{"Sánchez  Gómez", "Sanchez Gomez"},
		{"çÇ", "cC"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Canonical(tt.in); got != tt.want {
			t.Errorf("Canonical(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSignatureMatchesCanonicalJoin(t *testing.T) {
	got := Signature("Anna", "Puig", "", "19900101", "12345678Z")

	sum := sha256.Sum256([]byte("Anna|Puig||19900101|12345678Z"))
	want := hex.EncodeToString(sum[:])

	if got != want {
		t.Fatalf("Signature = %s, want %s", got, want)
	}
}

func TestSignatureDeterministicUnderNormalization(t *testing.T) {
	base := Signature("Anna", "Puig", "", "19900101", "12345678Z")

	equivalent := []struct {
		name                                    string
		nom, cognom1, cognom2, date, nationalID string
	}{
		{"padded whitespace", "  Anna ", " Puig  ", "", "19900101", "12345678Z"},
		{"accented nom", "Ánna", "Puig", "", "19900101", "12345678Z"},
		{"lowercase id", "Anna", "Puig", "", "19900101", "12345678z"},
	}

	for _, tt := range equivalent {
		t.Run(tt.name, func(t *testing.T) {
			got := Signature(tt.nom, tt.cognom1, tt.cognom2, tt.date, tt.nationalID)
			if got != base {
				t.Errorf("expected identical fingerprint, got %s vs %s", got, base)
			}
		})
	}
}

func TestSignatureDiffersPerField(t *testing.T) {
	base := Signature("Anna", "Puig", "", "19900101", "12345678Z")

	different := []struct {
		name                                    string
		nom, cognom1, cognom2, date, nationalID string
	}{
		{"nom", "Anne", "Puig", "", "19900101", "12345678Z"},
		{"cognom1", "Anna", "Puid", "", "19900101", "12345678Z"},
		{"cognom2", "Anna", "Puig", "Mas", "19900101", "12345678Z"},
		{"date", "Anna", "Puig", "", "19900102", "12345678Z"},
		{"id", "Anna", "Puig", "", "19900101", "12345678X"},
	}

	seen := map[string]bool{base: true}
	for _, tt := range different {
		t.Run(tt.name, func(t *testing.T) {
			got := Signature(tt.nom, tt.cognom1, tt.cognom2, tt.date, tt.nationalID)
			if seen[got] {
				t.Errorf("fingerprint collision for changed field %s", tt.name)
			}
			seen[got] = true
		})
	}
}

func TestTruncateIP(t *testing.T) {
	long := strings.Repeat("x", 60)

	if got := TruncateIP(long); len(got) != 40 {
		t.Errorf("expected 40 characters, got %d", len(got))
	}
	if got := TruncateIP("203.0.113.7"); got != "203.0.113.7" {
		t.Errorf("short address should pass through, got %q", got)
	}
}

func TestIPHashesTruncatedAddress(t *testing.T) {
	long := strings.Repeat("x", 60)

	if IP(long) != IP(long[:40]) {
		t.Error("hash should only cover the truncated address")
	}
	if IP("203.0.113.7") == IP("203.0.113.8") {
		t.Error("distinct addresses should hash differently")
	}
}
