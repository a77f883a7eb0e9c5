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

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"email", "  ana@espol.edu.ec \n", "ana@espol.edu.ec"},
		{"last line without newline", "Guayaquil", "Guayaquil"},
		{"CRLF", "0991234567\r\n", "0991234567"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(rdr(tc.input), "Correo", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, "Correo\n> ", out.String())
		})
	}
}

func TestGetSimpleText_ClosedInput(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Correo", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetMultiline_StopsAtBlankLine(t *testing.T) {
	in := rdr("Estudiante de computación.\nDisponible fines de semana.\n\nnext command\n")
	var out bytes.Buffer

	got, err := GetMultiline(in, "Bio", &out)
	require.NoError(t, err)
	assert.Equal(t, "Estudiante de computación.\nDisponible fines de semana.", got)
	assert.Contains(t, out.String(), "empty line to finish")

	rest, err := GetSimpleText(in, "", &out)
	require.NoError(t, err)
	assert.Equal(t, "next command", rest)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("secret123"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "secret123", string(pw))
	assert.NotContains(t, out.String(), "secret123")

	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }
	_, err = GetPassword(&out)
	assert.EqualError(t, err, "not a terminal")
}

func TestGetList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "skills", input: "go, sql,excel\n", expected: []string{"go", "sql", "excel"}},
		{name: "sectors with blanks", input: " retail ,, ,eventos\n", expected: []string{"retail", "eventos"}},
		{name: "no links", input: "\n", expected: []string{}},
		{name: "CRLF", input: "https://github.com/ana,https://ana.dev\r\n", expected: []string{"https://github.com/ana", "https://ana.dev"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetList(rdr(tc.input), "Habilidades", &out)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
			assert.Contains(t, out.String(), "Habilidades (comma separated)")
		})
	}
}

func TestGetYesNo(t *testing.T) {
	for input, want := range map[string]bool{
		"y\n":   true,
		"Yes\n": true,
		"si\n":  true,
		"Sí\n":  true,
		"n\n":   false,
		"no\n":  false,
		"\n":    false,
	} {
		var out bytes.Buffer
		got, err := GetYesNo(rdr(input), "¿Aceptas los términos?", &out)
		require.NoError(t, err)
		assert.Equal(t, want, got, "input %q", input)
		assert.Contains(t, out.String(), "[y/N]")
	}
}
