package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// nowFn is a test seam for the clock used by time prompts.
var nowFn = time.Now

// timeLayouts are the accepted spellings for absolute timestamps, tried in
// order. Times without a zone are interpreted in the local location.
var timeLayouts = []string{
	"2006-01-02 15:04",
	time.RFC3339,
	"2006-01-02",
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetTime prompts for a timestamp. An empty answer or "now" yields the
// current time. "15:04" means today at that wall-clock time; full layouts
// from timeLayouts are accepted as well.
func GetTime(reader *bufio.Reader, prompt string, w io.Writer) (time.Time, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return time.Time{}, err
	}
	if s == "" || strings.EqualFold(s, "now") {
		return nowFn(), nil
	}

	if t, err := time.Parse("15:04", s); err == nil {
		now := nowFn()
		return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time %q (try 15:04, 2006-01-02 15:04, or empty for now)", s)
}

// GetFloat prompts for a decimal number, e.g. grams or kilograms.
func GetFloat(reader *bufio.Reader, prompt string, w io.Writer) (float64, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

// GetInt prompts for a whole number, e.g. reps.
func GetInt(reader *bufio.Reader, prompt string, w io.Writer) (int, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not a whole number: %q", s)
	}
	return v, nil
}

// GetOptionalId prompts for a numeric identifier. An empty answer means
// "none" and yields nil.
func GetOptionalId(reader *bufio.Reader, prompt string, w io.Writer) (*int64, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not an id: %q", s)
	}
	return &v, nil
}
