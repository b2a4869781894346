package middleware

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/api/v1/books/01ABC123", "/api/v1/books/:id"},
		{"/api/v1/books/01ABC123/entries", "/api/v1/books/:id/entries"},
		{"/api/v1/rates/FUBON", "/api/v1/rates/:id"},
		{"/api/v1/rates/FUBON/refresh", "/api/v1/rates/:id/refresh"},
		{"/api/v1/books/", "/api/v1/books/"},
		{"/api/v1/entries", "/api/v1/entries"},
		{"/health", "/health"},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.path); got != tt.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
