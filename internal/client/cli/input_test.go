package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("hello world\n"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name?\n> ", out.String())
}

func TestGetSimpleTextEOF(t *testing.T) {
	var out bytes.Buffer
	got, err := GetSimpleText(rdr("lastline"), "Name?", &out)
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = GetSimpleText(rdr(""), "Name?", &out)
	assert.Error(t, err)
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"double enter", "a\nb\n\n\n", "a\nb"},
		{"crlf", "a\r\nb\r\n\r\n", "a\nb"},
		{"immediate blank", "\n", ""},
		{"eof without blank line", "a\nb", "a\nb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tc.input), "Enter text", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestGetPassword_Error(t *testing.T) {
	old := readPassword
	defer func() { readPassword = old }()
	readPassword = func(int) ([]byte, error) {
		return nil, errors.New("boom")
	}
	var out bytes.Buffer
	_, err := GetPassword(&out)
	assert.Error(t, err)
}

func TestGetInt64(t *testing.T) {
	var out bytes.Buffer

	n, err := GetInt64(rdr("abc\n42\n"), "Id", &out, false)
	require.NoError(t, err)
	require.NotNil(t, n)
	assert.Equal(t, int64(42), *n)
	assert.Contains(t, out.String(), "Please enter a whole number")

	n, err = GetInt64(rdr("\n"), "Id", &out, true)
	require.NoError(t, err)
	assert.Nil(t, n)

	_, err = GetInt64(rdr("x"), "Id", &out, false)
	assert.Error(t, err, "input ends before a number is given")
}

func TestGetFloat(t *testing.T) {
	var out bytes.Buffer
	f, err := GetFloat(rdr("ten\n10.5\n"), "Price", &out)
	require.NoError(t, err)
	assert.Equal(t, 10.5, f)
}

func TestGetDate(t *testing.T) {
	var out bytes.Buffer

	d, err := GetDate(rdr("03/01/2024\n2024-03-01\n"), "Date", &out)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())
	assert.Contains(t, out.String(), "Please enter a date as YYYY-MM-DD")

	d, err = GetDate(rdr("\n"), "Date", &out)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}
