package rfc

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// FuzzValidate checks that arbitrary input never panics, that the verdict is
// stable under re-normalization, and that accepted values have no surrounding
// whitespace.
func FuzzValidate(f *testing.F) {
	f.Add("")
	f.Add("ABC123456")
	f.Add("  xyza123456xy1 ")
	f.Add("ÑÑÑ000000")
	f.Add("'; DROP TABLE validations;--")
	f.Add(string([]byte{0xff, 0xfe, 0x00}))

	f.Fuzz(func(t *testing.T, input string) {
		normalized, valid := Validate(input)

		again, validAgain := Validate(normalized)
		if again != normalized || validAgain != valid {
			t.Errorf("re-validating %q changed result: %q/%v -> %q/%v", input, normalized, valid, again, validAgain)
		}

		if valid {
			if strings.TrimSpace(normalized) != normalized {
				t.Errorf("accepted value %q has surrounding whitespace", normalized)
			}
			if !utf8.ValidString(normalized) {
				t.Errorf("accepted value %q is not valid UTF-8", normalized)
			}
			if n := utf8.RuneCountInString(normalized); n != 9 && n != 10 && n != 12 && n != 13 {
				t.Errorf("accepted value %q has unexpected length %d", normalized, n)
			}
		}
	})
}
