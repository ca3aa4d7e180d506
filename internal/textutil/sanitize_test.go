package textutil

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"a/b\\c:d", "a-b-c-d"},
		{"what?.pdf", "what.pdf"},
		{"  spaced.docx  ", "spaced.docx"},
		{"<angle|pipe>", "anglepipe"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := SanitizeFileName(tc.in); got != tc.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
