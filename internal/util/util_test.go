package util_test

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/bookctl/internal/util"
)

func TestConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\n", false},
		{"", false}, // EOF declines
	}

	for _, tc := range cases {
		var out strings.Builder
		got := util.Confirm(strings.NewReader(tc.input), &out, "Clear everything?")
		if got != tc.want {
			t.Errorf("Confirm(%q) = %v, want %v", tc.input, got, tc.want)
		}
		if !strings.Contains(out.String(), "Clear everything?") {
			t.Errorf("prompt not written for input %q", tc.input)
		}
	}
}
