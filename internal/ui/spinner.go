package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlue500))

// Spinner is the transient progress line shown while the template downloads.
// Start and Stop nest: the line disappears when the last Start is stopped.
// Without a terminal it degrades to printing each Start message once.
type Spinner struct {
	mu      sync.Mutex
	depth   int
	message string
	out     io.Writer
	isTTY   bool

	program *tea.Program
	exited  chan struct{}
}

type (
	statusMsg string
	stopMsg   struct{}
)

type spinnerModel struct {
	spinner  spinner.Model
	message  string
	started  time.Time
	stopping bool
}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle))
	return spinnerModel{spinner: s, message: message, started: time.Now()}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.message = string(msg)
	case stopMsg:
		m.stopping = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.stopping {
		return ""
	}
	elapsed := time.Since(m.started).Truncate(time.Second)
	return fmt.Sprintf("%s %s %s", m.spinner.View(), DimStyle.Render(m.message), DimStyle.Render("("+elapsed.String()+")"))
}

// NewSpinner draws on stderr so stdout stays clean for piping.
func NewSpinner() *Spinner {
	return newSpinner(os.Stderr, term.IsTerminal(int(os.Stderr.Fd())))
}

func newSpinner(out io.Writer, isTTY bool) *Spinner {
	return &Spinner{out: out, isTTY: isTTY}
}

func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.depth++
	s.message = message

	switch {
	case s.program != nil:
		s.program.Send(statusMsg(message))
	case s.depth > 1:
		// nested Start without a program: the line was already printed
	case !s.isTTY:
		fmt.Fprintln(s.out, DimStyle.Render(message))
	default:
		s.program = tea.NewProgram(newSpinnerModel(message), tea.WithOutput(s.out), tea.WithInput(nil))
		s.exited = make(chan struct{})
		go func(p *tea.Program, exited chan struct{}) {
			_, _ = p.Run()
			close(exited)
		}(s.program, s.exited)
	}
}

// Update replaces the message without changing the nesting depth.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.message = message
	if s.program != nil {
		s.program.Send(statusMsg(message))
	}
}

func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Println prints a line above the running spinner, or directly when there is none.
func (s *Spinner) Println(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.program != nil {
		s.program.Send(tea.Println(text)())
		return
	}
	fmt.Fprintln(s.out, text)
}

// Stop ends one Start. The last one clears the line and waits for the renderer to exit.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.depth > 0 {
		s.depth--
	}
	if s.depth > 0 || s.program == nil {
		s.mu.Unlock()
		return
	}

	program, exited := s.program, s.exited
	s.program = nil
	s.mu.Unlock()

	program.Send(stopMsg{})
	<-exited
}
