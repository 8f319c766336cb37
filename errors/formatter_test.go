package errors

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestDefaultFormatterConfig(t *testing.T) {
	config := DefaultFormatterConfig()

	assert.False(t, config.Verbose)
	assert.Equal(t, "auto", config.Color)
	assert.Equal(t, 80, config.MaxLineLength)
}

func TestFormat_NilError(t *testing.T) {
	assert.Empty(t, Format(nil, DefaultFormatterConfig()))
}

func TestFormat_SimpleError(t *testing.T) {
	config := DefaultFormatterConfig()
	config.Color = "never"

	result := Format(errors.New("test error"), config)

	assert.Contains(t, result, "test error")
	assert.NotContains(t, result, hintMarker)
}

func TestFormat_ErrorWithMultipleHints(t *testing.T) {
	err := errors.WithHint(errors.WithHint(errors.New("test error"), "First hint"), "Second hint")
	config := DefaultFormatterConfig()
	config.Color = "never"

	result := Format(err, config)

	assert.Contains(t, result, "First hint")
	assert.Contains(t, result, "Second hint")
	assert.Equal(t, 2, strings.Count(result, hintMarker))
}

func TestFormat_WithTitle(t *testing.T) {
	err := Build(errors.New("restore failed")).
		WithTitle("Report Error").
		WithHint("Run 'cloverkit restore'").
		Err()
	config := DefaultFormatterConfig()
	config.Color = "never"

	result := Format(err, config)

	assert.True(t, strings.HasPrefix(result, "Report Error\n"))
	assert.NotContains(t, result, titlePrefix)
	assert.Equal(t, 1, strings.Count(result, hintMarker))
}

func TestFormat_WithExplanation(t *testing.T) {
	err := Build(errors.New("ant cloverkit: exit status 1")).
		WithTitle("Clover failed").
		WithExplanation("Ant ran the generated build file and reported a failure.").
		Err()
	config := DefaultFormatterConfig()
	config.Color = "never"

	result := Format(err, config)

	assert.Contains(t, result, "Ant ran the generated build file and reported a failure.")
	assert.Less(t, strings.Index(result, "exit status 1"), strings.Index(result, "Ant ran the generated"))
}

func TestFormat_LongErrorMessage(t *testing.T) {
	longMsg := "failed to restore the original classes of source set main from build/classes/java/main-bak because the target directory could not be renamed"
	config := DefaultFormatterConfig()
	config.Color = "never"
	config.MaxLineLength = 40

	result := Format(errors.New(longMsg), config)

	for _, line := range strings.Split(result, "\n") {
		assert.LessOrEqual(t, len(line), 40)
	}
}

func TestFormat_VerboseWithContext(t *testing.T) {
	err := Build(errors.New("move failed")).
		WithContext("source_set", "main").
		Err()
	config := FormatterConfig{Verbose: true, Color: "never", MaxLineLength: 80}

	result := Format(err, config)

	assert.Contains(t, result, "Context")
	assert.Contains(t, result, "source_set")
	assert.Contains(t, result, "main")
}

func TestFormat_NonVerboseHidesContext(t *testing.T) {
	err := Build(errors.New("move failed")).
		WithContext("source_set", "main").
		Err()
	config := FormatterConfig{Color: "never", MaxLineLength: 80}

	assert.NotContains(t, Format(err, config), "Context")
}

func TestShouldUseColor(t *testing.T) {
	assert.True(t, shouldUseColor("always"))
	assert.False(t, shouldUseColor("never"))
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"short text", "short", 10, "short"},
		{"wraps at width", "one two three four", 9, "one two\nthree\nfour"},
		{"zero width uses default", "a b", 0, "a b"},
		{"empty", "", 10, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapText(tt.text, tt.width))
		})
	}
}

func TestFormatContextTable_NoContext(t *testing.T) {
	assert.Empty(t, formatContextTable(errors.New("plain"), false))
}
