package main

import "testing"

func TestRefreshRatesURL(t *testing.T) {
	tests := []struct {
		base string
		bank string
		want string
	}{
		{"http://localhost:8080", "FUBON", "http://localhost:8080/api/v1/rates/FUBON/refresh"},
		{"http://localhost:8080", "fubon", "http://localhost:8080/api/v1/rates/FUBON/refresh"},
		{"https://ledger.example.com", "richart", "https://ledger.example.com/api/v1/rates/RICHART/refresh"},
	}

	for _, tt := range tests {
		if got := refreshRatesURL(tt.base, tt.bank); got != tt.want {
			t.Errorf("refreshRatesURL(%q, %q) = %q, want %q", tt.base, tt.bank, got, tt.want)
		}
	}
}
