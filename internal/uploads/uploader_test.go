package uploads

import (
	"strings"
	"testing"
)

func TestResolveResourceType(t *testing.T) {
	cases := []struct {
		requested   ResourceType
		contentType string
		want        ResourceType
	}{
		{ResourceAuto, "image/png", ResourceImage},
		{ResourceAuto, "image/jpeg", ResourceImage},
		{ResourceAuto, "application/pdf", ResourceRaw},
		{ResourceAuto, "application/octet-stream", ResourceRaw},
		{ResourceRaw, "image/png", ResourceRaw},
		{ResourceImage, "application/pdf", ResourceImage},
		{"", "application/pdf", ResourceRaw},
	}

	for _, tc := range cases {
		if got := resolveResourceType(tc.requested, tc.contentType); got != tc.want {
			t.Errorf("resolveResourceType(%q, %q) = %q, want %q", tc.requested, tc.contentType, got, tc.want)
		}
	}
}

func TestBuildObjectKey(t *testing.T) {
	key := buildObjectKey("resumes", "My Resume.PDF")
	if !strings.HasPrefix(key, "resumes/") {
		t.Fatalf("expected resumes/ prefix, got %q", key)
	}
	if !strings.HasSuffix(key, ".pdf") {
		t.Fatalf("expected lowercased .pdf suffix, got %q", key)
	}

	key = buildObjectKey("", "photo.png")
	if strings.Contains(key, "/") {
		t.Fatalf("expected no folder prefix, got %q", key)
	}

	// Keys are unique even for identical inputs.
	if buildObjectKey("resumes", "a.pdf") == buildObjectKey("resumes", "a.pdf") {
		t.Fatal("expected distinct object keys for repeated uploads")
	}
}

func TestPublicURLShape(t *testing.T) {
	s := &Service{publicBaseURL: "https://media.example.com"}

	got := s.publicURL(ResourceRaw, "resumes/abc.pdf")
	want := "https://media.example.com/raw/upload/resumes/abc.pdf"
	if got != want {
		t.Fatalf("publicURL = %q, want %q", got, want)
	}

	got = s.publicURL(ResourceImage, "abc.png")
	want = "https://media.example.com/image/upload/abc.png"
	if got != want {
		t.Fatalf("publicURL = %q, want %q", got, want)
	}
}
