package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoInput is returned when the input ends before an answer was given
// and there is no default to fall back to.
var ErrNoInput = errors.New("no input available")

// LinePrompter asks questions over plain line-oriented streams. It is used
// when stdin is not a terminal, e.g. `printf "demo\n4\n" | create-iota-app`.
type LinePrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// SimplePrompt reads one line. An empty answer returns defaultValue.
func (p *LinePrompter) SimplePrompt(promptText, defaultValue string, handler func(input string) error) error {
	if defaultValue != "" {
		fmt.Fprintf(p.writer, "%s [%s] ", promptText, defaultValue)
	} else {
		fmt.Fprintf(p.writer, "%s ", promptText)
	}

	input, err := p.readLine()
	if err != nil && !(errors.Is(err, io.EOF) && defaultValue != "") {
		return err
	}

	if input == "" {
		input = defaultValue
	}
	return handler(input)
}

// SelectPrompt lists the choices with their 1-based numbers and accepts either
// a number or the exact choice. An empty answer picks the first choice.
func (p *LinePrompter) SelectPrompt(promptText string, choices []string, handler func(choice string) error) error {
	if len(choices) == 0 {
		return errors.New("no choices to select from")
	}

	fmt.Fprintln(p.writer, promptText)
	for i, choice := range choices {
		fmt.Fprintf(p.writer, "  %d) %s\n", i+1, choice)
	}
	fmt.Fprintf(p.writer, "Choice [1-%d]: ", len(choices))

	input, err := p.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	choice, err := resolveChoice(input, choices)
	if err != nil {
		return err
	}
	return handler(choice)
}

func resolveChoice(input string, choices []string) (string, error) {
	if input == "" {
		return choices[0], nil
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(choices) {
			return "", fmt.Errorf("choice %d is out of range, pick a number between 1 and %d", n, len(choices))
		}
		return choices[n-1], nil
	}

	for _, choice := range choices {
		if strings.EqualFold(choice, input) {
			return choice, nil
		}
	}
	return "", fmt.Errorf("invalid choice %q", input)
}

// readLine returns the trimmed next line. io.EOF is returned only when nothing was read.
func (p *LinePrompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return line, nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %w", ErrNoInput, err)
		}
		return "", err
	}
	return line, nil
}
