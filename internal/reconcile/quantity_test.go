package reconcile

import "testing"

func TestParseQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"3", 3},
		{" 42 ", 42},
		{"0", 0},
		{"", 0},
		{"a pinch", 0},
		{"2.5", 0},
		{"-5", 0},
		{"3 boxes", 0},
	}
	for _, c := range cases {
		if got := ParseQuantity(c.in); got != c.want {
			t.Errorf("ParseQuantity(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
