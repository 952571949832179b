package main

import (
	"testing"

	"github.com/aligndiff/aligndiff/compare"
)

func TestDigitCount(t *testing.T) {
	cases := map[int]int{0: 1, 1: 1, 9: 1, 10: 2, 99: 2, 100: 3}
	for n, want := range cases {
		if got := digitCount(n); got != want {
			t.Errorf("digitCount(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestFitWidthPadsAndTruncates(t *testing.T) {
	if got := fitWidth("abc", 6); got != "abc   " {
		t.Errorf("fitWidth pad = %q", got)
	}
	if got := fitWidth("abcdefgh", 4); len([]rune(got)) > 4 {
		t.Errorf("fitWidth truncate = %q, longer than 4 runes", got)
	}
}

func TestCodeForMaskPrecedence(t *testing.T) {
	if c := codeForMask(compare.MarkerMovedLine | compare.MarkerAdded); c != 'M' {
		t.Errorf("moved+added code = %c, want M", c)
	}
	if c := codeForMask(compare.MarkerAdded); c != '>' {
		t.Errorf("added code = %c, want >", c)
	}
	if c := codeForMask(compare.MarkerRemoved); c != '<' {
		t.Errorf("removed code = %c, want <", c)
	}
	if c := codeForMask(0); c != '=' {
		t.Errorf("match code = %c, want =", c)
	}
}

func TestContextVisibilityCollapsesFarRows(t *testing.T) {
	masks := make([]compare.MarkerMask, 10)
	masks[5] = compare.MarkerChanged
	visible := contextVisibility(masks, 1)
	for i, v := range visible {
		want := i >= 4 && i <= 6
		if v != want {
			t.Errorf("visible[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestContextVisibilityShowsAllWhenDisabled(t *testing.T) {
	masks := make([]compare.MarkerMask, 5)
	visible := contextVisibility(masks, 0)
	for i, v := range visible {
		if !v {
			t.Errorf("visible[%d] = false, want true when context disabled", i)
		}
	}
}
