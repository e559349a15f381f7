package utils

import (
	"errors"
	"testing"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"9812345678", "+919812345678"},
		{"+919812345678", "+919812345678"},
		{"+91 98123 45678", "+919812345678"},
		{"+1 (415) 555-0134", "+14155550134"},
	}
	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if err != nil {
			t.Errorf("NormalizePhone(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhoneRejectsGarbage(t *testing.T) {
	for _, in := range []string{"12345", "not-a-number", "98123"} {
		if _, err := NormalizePhone(in); !errors.Is(err, ErrValidation) {
			t.Errorf("NormalizePhone(%q) = %v, want ErrValidation", in, err)
		}
	}
}
