package httpmetrics_test

import (
	"testing"

	"sitehost/internal/common/httpmetrics"
)

func TestNormalizePath(t *testing.T) {
	testCases := []struct {
		path string
		want string
	}{
		{"", "/"},
		{"/api/register", "/api/register"},
		{"/api/me", "/api/me"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/api/users/550e8400-e29b-41d4-a716-446655440000", "/api/users/{id}"},
		{"/api/users/12345", "/api/users/{param}"},
		{"/", "/static"},
		{"/index.html", "/static"},
		{"/assets/app.js", "/static"},
	}

	for _, tc := range testCases {
		if got := httpmetrics.NormalizePath(tc.path); got != tc.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
