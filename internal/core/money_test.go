package core

import (
	"errors"
	"testing"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in    string
		cents int64
	}{
		{"12.34", 1234},
		{"12,34", 1234},
		{"12.345", 1235},
		{"12.344", 1234},
		{"0", 0},
		{"0.00", 0},
		{".5", 50},
		{"7.", 700},
		{" 500 ", 50000},
		{"530.00", 53000},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMoney(tt.in)
			if err != nil {
				t.Fatalf("ParseMoney(%q) error: %v", tt.in, err)
			}
			if got.Cents != tt.cents {
				t.Errorf("ParseMoney(%q) = %d, want %d", tt.in, got.Cents, tt.cents)
			}
		})
	}
}

func TestParseMoneyRejects(t *testing.T) {
	for _, in := range []string{"", " ", "-1", "+1", "abc", "1.2.3", "1e3", "NaN", "Inf", ".", "99999999999999999999"} {
		t.Run(in, func(t *testing.T) {
			if _, err := ParseMoney(in); !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseMoney(%q) = %v, want ErrInvalidAmount", in, err)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	cases := map[int64]string{
		0:      "0.00",
		5:      "0.05",
		3000:   "30.00",
		123456: "1234.56",
		-3000:  "-30.00",
	}
	for cents, want := range cases {
		if got := (Money{Cents: cents}).String(); got != want {
			t.Errorf("Money{%d}.String() = %q, want %q", cents, got, want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := MustParseMoney("0.10")
	b := MustParseMoney("0.20")
	if got := a.Add(b); got.String() != "0.30" {
		t.Fatalf("0.10 + 0.20 = %s", got)
	}
	if got := a.Sub(b); got.Cents != -10 {
		t.Fatalf("0.10 - 0.20 = %s", got)
	}
}
