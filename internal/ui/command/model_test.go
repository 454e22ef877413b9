package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/tasktracker/internal/view"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Command
	}{
		{"filter high", Command{Kind: KindFilter, Filter: view.FilterHigh}},
		{"  F   Low ", Command{Kind: KindFilter, Filter: view.FilterLow}},
		{"filter all", Command{Kind: KindFilter, Filter: view.FilterAll}},
		{"new", Command{Kind: KindNew}},
		{"add", Command{Kind: KindNew}},
		{"clear", Command{Kind: KindClear}},
		{"help", Command{Kind: KindHelp}},
		{"q", Command{Kind: KindQuit}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, input := range []string{"", "filter", "filter urgent", "filter high low", "sync"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}
