package data

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

type (
	Line struct {
		Word        string
		Translation string
		Context     string
	}

	ParsingError struct {
		InvalidLines []int
	}
)

func (e *ParsingError) Error() string {
	return fmt.Sprintf("parsing error: invalidLines=%v", e.InvalidLines)
}

// Parse reads "word:translation[:context]" lines from in and streams them to
// out. Blank lines are skipped; malformed lines are collected and reported as
// a ParsingError after the scan completes.
func Parse(ctx context.Context, in io.ReadCloser, out chan<- Line) error {
	defer close(out)
	defer in.Close()

	scanner := bufio.NewScanner(in)
	invalidLines := make([]int, 0, 10) //nolint:mnd // 10 is the expected capacity
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Split(line, ":")
		if len(parts) < 2 || len(parts) > 3 {
			invalidLines = append(invalidLines, lineNum)
			continue
		}

		word := strings.TrimSpace(parts[0])
		translation := strings.TrimSpace(parts[1])
		if word == "" || translation == "" {
			invalidLines = append(invalidLines, lineNum)
			continue
		}
		contextText := ""
		if len(parts) == 3 { //nolint:mnd // 3 is the expected length
			contextText = strings.TrimSpace(parts[2])
		}

		select {
		case <-ctx.Done():
			return nil
		case out <- Line{
			Word:        word,
			Translation: translation,
			Context:     contextText,
		}: // continue
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan file: %w", err)
	}
	if len(invalidLines) > 0 {
		return &ParsingError{InvalidLines: invalidLines}
	}

	return nil
}
