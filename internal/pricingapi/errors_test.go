package pricingapi

import "testing"

func TestNewAPIError(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		detail string
	}{
		{"string detail", `{"detail":"Profile not found"}`, "Profile not found"},
		{"validation list", `{"detail":[{"loc":["body","origin_postal_code"],"msg":"String should have at least 5 characters"}]}`, "origin_postal_code: String should have at least 5 characters"},
		{"plain text", `Internal Server Error`, "Internal Server Error"},
		{"empty", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newAPIError(500, []byte(tt.body))
			if e.Detail != tt.detail {
				t.Fatalf("expected %q, got %q", tt.detail, e.Detail)
			}
		})
	}
}
