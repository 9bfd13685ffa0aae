package ui

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromptInt(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("abc\n-1\n7\n"))
	assert.Equal(t, 7, promptInt(reader, "Width", 4))

	reader = bufio.NewReader(strings.NewReader("\n"))
	assert.Equal(t, 4, promptInt(reader, "Width", 4))

	// Closed input returns the current value even when it is invalid; the
	// caller's Validate rejects it.
	reader = bufio.NewReader(strings.NewReader(""))
	assert.Equal(t, 0, promptInt(reader, "Width", 0))

	reader = bufio.NewReader(strings.NewReader("zero"))
	assert.Equal(t, 0, promptInt(reader, "Width", 0))
}

func TestPromptView_StopsOnClosedInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("decade\nmonth\n"))
	assert.Equal(t, "month", promptView(reader, "week"))

	reader = bufio.NewReader(strings.NewReader(""))
	assert.Equal(t, "fortnight", promptView(reader, "fortnight"))
}

func TestPromptTheme_StopsOnClosedInput(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))
	assert.Equal(t, "nope", promptTheme(reader, "nope"))

	reader = bufio.NewReader(strings.NewReader("MOCHA\n"))
	assert.Equal(t, "mocha", promptTheme(reader, "nope"))
}
