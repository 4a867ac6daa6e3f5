package data

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, input string) ([]Line, error) {
	t.Helper()

	out := make(chan Line)
	errCh := make(chan error, 1)
	go func() {
		errCh <- Parse(context.Background(), io.NopCloser(strings.NewReader(input)), out)
	}()

	var lines []Line
	for line := range out {
		lines = append(lines, line)
	}
	return lines, <-errCh
}

func TestParse(t *testing.T) {
	t.Run("valid lines", func(t *testing.T) {
		lines, err := collect(t, "māja:house\nsuns:dog:Suns rej.\n")
		require.NoError(t, err)
		assert.Equal(t, []Line{
			{Word: "māja", Translation: "house"},
			{Word: "suns", Translation: "dog", Context: "Suns rej."},
		}, lines)
	})

	t.Run("blank lines are skipped", func(t *testing.T) {
		lines, err := collect(t, "\n  \nmāja:house\n\n")
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		lines, err := collect(t, " māja : house : piemērs \n")
		require.NoError(t, err)
		assert.Equal(t, []Line{{Word: "māja", Translation: "house", Context: "piemērs"}}, lines)
	})

	t.Run("invalid lines are reported with numbers", func(t *testing.T) {
		lines, err := collect(t, "māja:house\nno-separator\n:empty word\nsuns:dog\na:b:c:d\n")

		var parseErr *ParsingError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, []int{2, 3, 5}, parseErr.InvalidLines)
		assert.Len(t, lines, 2)
	})

	t.Run("cancelled context stops the stream", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		out := make(chan Line)
		err := Parse(ctx, io.NopCloser(strings.NewReader("māja:house\nsuns:dog\n")), out)
		require.NoError(t, err)
	})
}
