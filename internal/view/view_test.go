package view_test

import (
	"testing"

	"apexmotors/internal/view"
)

func TestStars(t *testing.T) {
	cases := []struct {
		rating float64
		want   string
	}{
		{0, "☆☆☆☆☆"},
		{5, "★★★★★"},
		{3.7, "★★★⯪☆"},
		{3.4, "★★★☆☆"},
		{4.5, "★★★★⯪"},
		{0.5, "⯪☆☆☆☆"},
		{-1, "☆☆☆☆☆"},
		{6, "★★★★★"},
	}
	for _, tc := range cases {
		if got := view.Stars(tc.rating); got != tc.want {
			t.Errorf("Stars(%v) = %q, want %q", tc.rating, got, tc.want)
		}
	}
}

func TestRound1(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{3.666666, 3.7},
		{3.64, 3.6},
		{5, 5},
		{4.05, 4.1},
	}
	for _, tc := range cases {
		if got := view.Round1(tc.in); got != tc.want {
			t.Errorf("Round1(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestUSD(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{417650, "$417,650"},
		{100, "$100"},
		{10000, "$10,000"},
		{1234567.5, "$1,234,567.50"},
		{0.99, "$0.99"},
	}
	for _, tc := range cases {
		if got := view.USD(tc.in); got != tc.want {
			t.Errorf("USD(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNum(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{108247, "108,247"},
		{999, "999"},
		{1000, "1,000"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := view.Num(tc.in); got != tc.want {
			t.Errorf("Num(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
