package portfolio

import "testing"

func TestNormalizeUsername(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"JohnDoe!", "johndoe"},
		{"jane.doe", "janedoe"},
		{"  User 42  ", "user42"},
		{"---", ""},
		{"already0k", "already0k"},
		{"", ""},
	}

	for _, tc := range cases {
		if got := NormalizeUsername(tc.in); got != tc.want {
			t.Errorf("NormalizeUsername(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeUsernameIdempotent(t *testing.T) {
	inputs := []string{"JohnDoe!", "Ümlaut-User", "a1b2C3", "портфолио"}
	for _, in := range inputs {
		once := NormalizeUsername(in)
		twice := NormalizeUsername(once)
		if once != twice {
			t.Errorf("normalize not idempotent for %q: %q != %q", in, once, twice)
		}
		for _, r := range once {
			if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
				t.Errorf("normalize(%q) contains %q outside [a-z0-9]", in, r)
			}
		}
	}
}
