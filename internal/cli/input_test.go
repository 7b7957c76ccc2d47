package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func stubNow(t *testing.T, tm time.Time) {
	t.Helper()
	orig := nowFn
	nowFn = func() time.Time { return tm }
	t.Cleanup(func() { nowFn = orig })
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	if err != nil || got != "hello world" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	if err != nil || got != "lastline" {
		t.Fatalf("got %q, err=%v", got, err)
	}
}

func TestGetTime(t *testing.T) {
	now := time.Date(2025, 6, 10, 9, 30, 0, 0, time.Local)
	stubNow(t, now)

	var out bytes.Buffer

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"empty means now", "\n", now},
		{"explicit now", "now\n", now},
		{"wall clock today", "08:15\n", time.Date(2025, 6, 10, 8, 15, 0, 0, time.Local)},
		{"date and time", "2025-06-09 18:00\n", time.Date(2025, 6, 9, 18, 0, 0, 0, time.Local)},
		{"date only", "2025-06-01\n", time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)},
		{"rfc3339", "2025-06-09T18:00:00Z\n", time.Date(2025, 6, 9, 18, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetTime(rdr(tt.input), "When?", &out)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestGetTime_Unparseable(t *testing.T) {
	var out bytes.Buffer
	_, err := GetTime(rdr("whenever\n"), "When?", &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "whenever")
}

func TestGetFloat(t *testing.T) {
	var out bytes.Buffer

	got, err := GetFloat(rdr("160.5\n"), "Grams", &out)
	require.NoError(t, err)
	assert.Equal(t, 160.5, got)

	_, err = GetFloat(rdr("many\n"), "Grams", &out)
	require.Error(t, err)
}

func TestGetInt(t *testing.T) {
	var out bytes.Buffer

	got, err := GetInt(rdr("5\n"), "Reps", &out)
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	_, err = GetInt(rdr("5.5\n"), "Reps", &out)
	require.Error(t, err)
}

func TestGetOptionalId(t *testing.T) {
	var out bytes.Buffer

	got, err := GetOptionalId(rdr("\n"), "Id", &out)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = GetOptionalId(rdr("42\n"), "Id", &out)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(42), *got)

	_, err = GetOptionalId(rdr("x\n"), "Id", &out)
	require.Error(t, err)
}
