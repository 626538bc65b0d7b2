package util

import "testing"

func TestParseUint(t *testing.T) {
	id, err := ParseUint("42")
	if err != nil || id != 42 {
		t.Errorf("ParseUint(42) = %d, %v", id, err)
	}

	for _, s := range []string{"", "abc", "-1", "1.5", "12x"} {
		if _, err := ParseUint(s); err == nil {
			t.Errorf("ParseUint(%q) should fail", s)
		}
	}
}
