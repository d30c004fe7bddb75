package uploads

import "testing"

func TestFixPdfURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "pdf under image path is rewritten",
			in:   "https://x/image/upload/v1/doc.pdf",
			want: "https://x/raw/upload/v1/doc.pdf",
		},
		{
			name: "image under image path is unchanged",
			in:   "https://x/image/upload/v1/photo.jpg",
			want: "https://x/image/upload/v1/photo.jpg",
		},
		{
			name: "pdf already under raw path is unchanged",
			in:   "https://x/raw/upload/v1/doc.pdf",
			want: "https://x/raw/upload/v1/doc.pdf",
		},
		{
			name: "empty input is unchanged",
			in:   "",
			want: "",
		},
		{
			name: "only the first image segment is rewritten",
			in:   "https://x/image/upload/image/upload/doc.pdf",
			want: "https://x/raw/upload/image/upload/doc.pdf",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FixPdfURL(tc.in); got != tc.want {
				t.Fatalf("FixPdfURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
