package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/booky/internal/client/models"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

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

// GetPassword prints a password prompt to w and reads a password
// from the user's terminal without echo. A newline is printed after
// the read to keep the UI tidy.
//
// The returned byte slice should be wiped by the caller when no longer needed.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetMultiline prints a prompt to w and reads lines until an empty one.
// Used for free-form descriptions.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
		return "", err
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// GetInt64 reads a whole number. An empty answer with optional set yields
// (nil, nil); otherwise the prompt is repeated until the input parses.
func GetInt64(reader *bufio.Reader, prompt string, w io.Writer, optional bool) (*int64, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return nil, err
		}
		if s == "" && optional {
			return nil, nil
		}
		n, perr := strconv.ParseInt(s, 10, 64)
		if perr == nil {
			return &n, nil
		}
		fmt.Fprintln(w, "Please enter a whole number")
	}
}

// GetFloat reads a decimal number, repeating the prompt until it parses.
func GetFloat(reader *bufio.Reader, prompt string, w io.Writer) (float64, error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return 0, err
		}
		f, perr := strconv.ParseFloat(s, 64)
		if perr == nil {
			return f, nil
		}
		fmt.Fprintln(w, "Please enter a number")
	}
}

// GetDate reads a YYYY-MM-DD date. An empty answer returns the zero Date.
func GetDate(reader *bufio.Reader, prompt string, w io.Writer) (models.Date, error) {
	for {
		s, err := GetSimpleText(reader, prompt+" (YYYY-MM-DD)", w)
		if err != nil {
			return models.Date{}, err
		}
		if s == "" {
			return models.Date{}, nil
		}
		d, perr := models.ParseDate(s)
		if perr == nil {
			return d, nil
		}
		fmt.Fprintln(w, "Please enter a date as YYYY-MM-DD")
	}
}
