package middleware

import (
	"net/http"
	"strings"
	"testing"
)

func TestRedactor_Text(t *testing.T) {
	r := newRedactor(nil)
	cases := []struct{ in, want string }{
		{"", ""},
		{"userId=123e4567-e89b-12d3-a456-426614174000", "userId=[REDACTED:id]"},
		{"mail=a.b@example.org", "mail=[REDACTED:email]"},
		{"call 212-555-1212", "call [REDACTED:phone]"},
		{"days=30&limit=100", "days=30&limit=100"},
	}
	for _, tc := range cases {
		if got := r.text(tc.in); got != tc.want {
			t.Fatalf("text(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRedactor_Headers(t *testing.T) {
	r := newRedactor([]string{" x-secret "})
	h := http.Header{}
	h.Set("Cookie", "a=b")
	h.Set("X-Secret", "s")
	h.Add("X-Forwarded-For", "1.1.1.1")
	h.Add("X-Forwarded-For", "2.2.2.2")
	h.Set("From", "ops@example.com")

	out := r.headers(h)
	if out["Cookie"] != redacted || out["X-Secret"] != redacted {
		t.Fatalf("masking failed: %v", out)
	}
	if out["X-Forwarded-For"] != "1.1.1.1, 2.2.2.2" {
		t.Fatalf("joined value = %q", out["X-Forwarded-For"])
	}
	if strings.Contains(out["From"], "@") {
		t.Fatalf("email leaked: %q", out["From"])
	}
}
