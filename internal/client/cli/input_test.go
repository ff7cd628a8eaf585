package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSecret(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }

	var out bytes.Buffer
	got, err := GetSecret(&out, "Enter API secret", nil)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(got))
	assert.Equal(t, "Enter API secret: \n", out.String())
}

func TestGetSecret_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetSecret(&out, "secret", nil)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestGetSecret_TerminalIgnoresScanner(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldTerm })
	readPassword = func(int) ([]byte, error) { return []byte("typed"), nil }
	isTerminal = func(int) bool { return true }

	lines := bufio.NewScanner(strings.NewReader("piped\n"))
	got, err := GetSecret(io.Discard, "secret", lines)
	require.NoError(t, err)
	assert.Equal(t, "typed", string(got))
}

func TestGetSecret_PipedInputReadsNextLine(t *testing.T) {
	oldRead, oldTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldTerm })
	readPassword = func(int) ([]byte, error) {
		t.Error("terminal must not be read for piped input")
		return nil, nil
	}
	isTerminal = func(int) bool { return false }

	lines := bufio.NewScanner(strings.NewReader("  s3cret \nexit\n"))
	var out bytes.Buffer
	got, err := GetSecret(&out, "Enter API secret", lines)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(got))
	assert.Equal(t, "Enter API secret: \n", out.String())

	require.True(t, lines.Scan())
	assert.Equal(t, "exit", lines.Text(), "only one line is consumed")
}

func TestGetSecret_PipedInputEOF(t *testing.T) {
	oldTerm := isTerminal
	t.Cleanup(func() { isTerminal = oldTerm })
	isTerminal = func(int) bool { return false }

	_, err := GetSecret(io.Discard, "secret", bufio.NewScanner(strings.NewReader("")))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "(not set)"},
		{"s", "****"},
		{"abcd", "****"},
		{"abcdef", "****ef"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, mask(tc.in), tc.in)
	}
}
