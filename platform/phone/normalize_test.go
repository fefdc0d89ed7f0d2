package phone

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0612345678", "+31612345678"},
		{"0031612345678", "+31612345678"},
		{"+31612345678", "+31612345678"},
		{"06-12 34 56 78", "+31612345678"},
		{"(020) 123 4567", "0201234567"},
		{"+44 20 7946 0958", "+442079460958"},
		{"0049301234567", "0049301234567"},
		{"12+34", "1234"},
		{"   ", ""},
	}

	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"0612345678",
		"0031612345678",
		"+31612345678",
		"06 - 1234 5678",
		"020-1234567",
		"+32 470 12 34 56",
		"abc",
		"",
	}

	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestIsDutch(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"+31612345678", true},
		{"0201234567", true},
		{"+31201234567", true},
		{"+3161234567", false},
		{"+442079460958", false},
		{"0012345678", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsDutch(tc.in); got != tc.want {
			t.Errorf("IsDutch(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
