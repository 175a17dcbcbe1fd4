package utils

import (
	"testing"
	"unicode/utf8"
)

func TestSafeFilenamePart(t *testing.T) {
	cases := map[string]struct {
		in   string
		want string
	}{
		"blank":           {in: "  ", want: "NA"},
		"separators":      {in: "Ana Rusu/2026:x", want: "Ana_Rusu_2026_x"},
		"diacritics kept": {in: "Ștefan Țurcanu", want: "Ștefan_Țurcanu"},
		"rune at limit":   {in: "Ana Maria Rusu-Popescu Ionescu Ciobanuxă", want: "Ana_Maria_Rusu-Popescu_Ionescu_Ciobanux"},
		"ascii truncated": {in: "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopq", want: "abcdefghijklmnopqrstuvwxyzabcdefghijklmn"},
	}
	for name, tc := range cases {
		got := SafeFilenamePart(tc.in)
		if got != tc.want {
			t.Fatalf("%s: got %q, want %q", name, got, tc.want)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("%s: result is not valid UTF-8: %q", name, got)
		}
		if len(got) > maxFilenamePart {
			t.Fatalf("%s: result longer than %d bytes", name, maxFilenamePart)
		}
	}
}
