package microsite

import (
	"regexp"
	"strings"
	"testing"
)

var accessURLPattern = regexp.MustCompile(`^https://monarch\.co/portal/private-access-[A-Z0-9]+$`)

func TestNewAccessURL(t *testing.T) {
	s, err := NewSynthesizer()
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		url := s.NewAccessURL()
		if !accessURLPattern.MatchString(url) {
			t.Fatalf("malformed access URL: %q", url)
		}
		seen[url] = true
	}
	if len(seen) < 2 {
		t.Error("access URLs are not randomized")
	}
}

func TestInjectAccessURL(t *testing.T) {
	tests := []struct {
		name string
		body string
		url  string
		want func(t *testing.T, got string)
	}{
		{
			name: "appends cta when no link present",
			body: "Hi Victoria,\n\nBest regards",
			url:  "https://monarch.co/portal/private-access-AAAA1111",
			want: func(t *testing.T, got string) {
				if !strings.HasPrefix(got, "Hi Victoria,") {
					t.Error("original body was not preserved")
				}
				if !strings.Contains(got, "https://monarch.co/portal/private-access-AAAA1111") {
					t.Error("url was not appended")
				}
				if !strings.Contains(got, "curated a secure, private digital portfolio") {
					t.Error("cta paragraph missing")
				}
			},
		},
		{
			name: "replaces existing link in place",
			body: "See your portfolio:\nhttps://monarch.co/portal/private-access-OLD123\n\nBest",
			url:  "https://monarch.co/portal/private-access-NEW456",
			want: func(t *testing.T, got string) {
				if strings.Contains(got, "OLD123") {
					t.Error("old link survived")
				}
				if strings.Count(got, "https://monarch.co/") != 1 {
					t.Errorf("expected exactly one portal link, got %d", strings.Count(got, "https://monarch.co/"))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.want(t, InjectAccessURL(tt.body, tt.url))
		})
	}
}

func TestInjectAccessURLIdempotent(t *testing.T) {
	body := "Hi Grant,\n\nBest regards"
	first := InjectAccessURL(body, "https://monarch.co/portal/private-access-ONE")
	second := InjectAccessURL(first, "https://monarch.co/portal/private-access-TWO")

	if strings.Count(second, "https://monarch.co/") != 1 {
		t.Fatalf("re-injection duplicated the link:\n%s", second)
	}
	if !strings.Contains(second, "private-access-TWO") {
		t.Error("second url did not replace the first")
	}
	if len(second) != len(first)+len("TWO")-len("ONE") {
		t.Error("body grew on re-injection")
	}
}

func TestSynthesize(t *testing.T) {
	s, err := NewSynthesizer()
	if err != nil {
		t.Fatalf("NewSynthesizer: %v", err)
	}

	listing := DefaultListing("Victoria Langford")
	html, err := s.Synthesize(listing)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	for _, fragment := range []string{
		"<!DOCTYPE html>",
		"Victoria Langford | The Monarch Collection",
		"$8,250,000",
		"2100 Memorial Drive",
		"6 BEDS | 5.5 BATHS | 9,200 SQ FT",
		"Kashmir Cortave",
		"kashmir@monarch.co",
	} {
		if !strings.Contains(html, fragment) {
			t.Errorf("rendered page missing %q", fragment)
		}
	}

	for _, tm := range listing.Testimonials {
		if !strings.Contains(html, tm.Name) {
			t.Errorf("testimonial %q missing from page", tm.Name)
		}
	}
}

func TestSynthesizeEmptyTestimonials(t *testing.T) {
	s, _ := NewSynthesizer()
	listing := DefaultListing("Test Lead")
	listing.Testimonials = nil

	html, err := s.Synthesize(listing)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if strings.Contains(html, "testimonial-quote") {
		t.Error("empty testimonials should render no testimonial blocks")
	}
}
