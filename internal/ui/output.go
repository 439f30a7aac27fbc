package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Output helpers - use these for consistent styled output across commands.

var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// SetOutput redirects the output helpers to w and returns a func restoring the previous writer.
func SetOutput(w io.Writer) (restore func()) {
	prev := out
	out = w
	return func() { out = prev }
}

// SetErrorOutput redirects ErrorOutput, like SetOutput.
func SetErrorOutput(w io.Writer) (restore func()) {
	prev := errOut
	errOut = w
	return func() { errOut = prev }
}

// ErrorOutput is where failure reports go, stderr unless redirected.
func ErrorOutput() io.Writer {
	return errOut
}

// Title prints a styled title/header
func Title(text string) {
	fmt.Fprintln(out, TitleStyle.Render(text))
}

// Success prints a success message with checkmark
func Success(text string) {
	fmt.Fprintln(out, SuccessStyle.Render("✓ "+text))
}

// Error prints an error message
func Error(text string) {
	fmt.Fprintln(out, ErrorStyle.Render("✗ "+text))
}

// Warning prints a warning message
func Warning(text string) {
	fmt.Fprintln(out, WarningStyle.Render("! "+text))
}

// Dim prints dimmed/secondary text
func Dim(text string) {
	fmt.Fprintln(out, DimStyle.Render("  "+text))
}

// Step prints a step instruction
func Step(text string) {
	fmt.Fprintln(out, StepStyle.Render(text))
}

// Command prints a shell command
func Command(text string) {
	fmt.Fprintln(out, CommandStyle.Render(text))
}

// URL prints a styled URL
func URL(text string) {
	fmt.Fprintln(out, URLStyle.Render(text))
}

// Line prints an empty line
func Line() {
	fmt.Fprintln(out)
}

// Print prints plain text
func Print(text string) {
	fmt.Fprintln(out, text)
}

// Printf prints formatted plain text
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(out, format, args...)
}

// Indent returns text with indentation
func Indent(text string, level int) string {
	return strings.Repeat("  ", level) + text
}

// Render functions - return styled string without printing (for composition)

func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

func RenderSuccess(text string) string {
	return SuccessStyle.Render(text)
}

func RenderError(text string) string {
	return ErrorStyle.Render(text)
}

func RenderWarning(text string) string {
	return WarningStyle.Render(text)
}

func RenderDim(text string) string {
	return DimStyle.Render(text)
}

func RenderBold(text string) string {
	return BoldStyle.Render(text)
}

func RenderCommand(text string) string {
	return CommandStyle.Render(text)
}

func RenderURL(text string) string {
	return URLStyle.Render(text)
}

func RenderHighlight(text string) string {
	return HighlightStyle.Render(text)
}
