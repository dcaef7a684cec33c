package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/fundops/internal/app/system/htmlsanitize"
)

func TestStrip(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"Growth Fund III", "Growth Fund III"},
		{"<b>Growth</b> Fund", "Growth Fund"},
		{"<script>alert('xss')</script>Fund", "Fund"},
	}
	for _, c := range cases {
		if got := htmlsanitize.Strip(c.in); got != c.want {
			t.Errorf("Strip(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	got := htmlsanitize.Sanitize("<p>Hello</p><script>alert('xss')</script>")
	if got != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	in := `<a href="javascript:alert('xss')">Click</a>`
	if got := htmlsanitize.Sanitize(in); got == in {
		t.Error("expected javascript: href to be removed")
	}
}
