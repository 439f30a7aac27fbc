package createapp

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nakamaio/create-iota-app/internal/templaterepo"
	"github.com/nakamaio/create-iota-app/internal/testutil"
	"github.com/nakamaio/create-iota-app/internal/ui"
)

type fakePrompter struct {
	directory    string
	directoryErr error
	template     string
	templateErr  error

	directoryCalls int
	gotDefault     string
	gotTitles      []string
}

func (p *fakePrompter) ProjectDirectory(defaultDirectory string) (string, error) {
	p.directoryCalls++
	p.gotDefault = defaultDirectory
	return p.directory, p.directoryErr
}

func (p *fakePrompter) Template(titles []string) (string, error) {
	p.gotTitles = titles
	return p.template, p.templateErr
}

type fakeDownloader struct {
	outcome templaterepo.Outcome
	events  []templaterepo.Event

	calls         int
	gotIdentifier string
	gotDestDir    string
}

func (d *fakeDownloader) DownloadTemplate(_ context.Context, sourceIdentifier, targetDirectory string, onEvent templaterepo.EmitFunc) templaterepo.Outcome {
	d.calls++
	d.gotIdentifier = sourceIdentifier
	d.gotDestDir = targetDirectory
	for _, ev := range d.events {
		onEvent(ev)
	}
	out := d.outcome
	out.Source, _ = templaterepo.ParseRepoSource(sourceIdentifier)
	return out
}

type fakeProgress struct {
	mu      sync.Mutex
	started []string
	updates []string
	printed []string
	stops   int
}

func (p *fakeProgress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.started = append(p.started, message)
}

func (p *fakeProgress) Update(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.updates = append(p.updates, message)
}

func (p *fakeProgress) Println(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.printed = append(p.printed, text)
}

func (p *fakeProgress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stops++
}

func newTestHandler(p Prompter, d Downloader) (*handler, *fakeProgress) {
	progress := &fakeProgress{}
	return &handler{
		log:        testutil.NewTestLogger(),
		catalog:    templaterepo.DefaultCatalog(),
		prompter:   p,
		downloader: d,
		progress:   progress,
		timeout:    30 * time.Second,
	}, progress
}

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := ui.SetOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func captureErrorOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	restore := ui.SetErrorOutput(&buf)
	t.Cleanup(restore)
	return &buf
}

func run(t *testing.T, h *handler, args []string) error {
	t.Helper()
	inputs, err := h.ResolveInputs(args)
	if err != nil {
		return err
	}
	if err := h.ValidateInputs(inputs); err != nil {
		return err
	}
	return h.Execute(context.Background(), inputs)
}

func TestEveryTemplatePassesItsIdentifier(t *testing.T) {
	expected := map[string]string{
		"Next.js + TypeScript":                     "nakamaio/iota-example-with-next",
		"Next.js + TypeScript + Tailwind + Shadcn": "nakamaio/iota-example-with-next-shadcn",
		"Next.js + TypeScript + Chakra UI":         "nakamaio/iota-example-with-next-chakra",
		"Vite + React + TypeScript":                "nakamaio/iota-example-with-vite-react",
	}

	for title, identifier := range expected {
		t.Run(title, func(t *testing.T) {
			captureOutput(t)
			prompter := &fakePrompter{template: title}
			downloader := &fakeDownloader{}
			h, _ := newTestHandler(prompter, downloader)

			require.NoError(t, run(t, h, []string{"demo"}))

			assert.Equal(t, 1, downloader.calls)
			assert.Equal(t, identifier, downloader.gotIdentifier)
			assert.Equal(t, "demo", downloader.gotDestDir)
		})
	}
}

func TestResolveInputs(t *testing.T) {
	t.Run("positional argument skips the directory prompt", func(t *testing.T) {
		prompter := &fakePrompter{template: "Next.js + TypeScript"}
		h, _ := newTestHandler(prompter, &fakeDownloader{})

		inputs, err := h.ResolveInputs([]string{"my-dapp"})
		require.NoError(t, err)

		assert.Equal(t, Inputs{ProjectDirectory: "my-dapp", Template: "Next.js + TypeScript"}, inputs)
		assert.Zero(t, prompter.directoryCalls)
		assert.Equal(t, templaterepo.DefaultCatalog().Titles(), prompter.gotTitles)
	})

	t.Run("missing argument prompts with the default", func(t *testing.T) {
		prompter := &fakePrompter{directory: "from-prompt", template: "Next.js + TypeScript"}
		h, _ := newTestHandler(prompter, &fakeDownloader{})

		inputs, err := h.ResolveInputs(nil)
		require.NoError(t, err)

		assert.Equal(t, "from-prompt", inputs.ProjectDirectory)
		assert.Equal(t, 1, prompter.directoryCalls)
		assert.Equal(t, "my-iota-app", prompter.gotDefault)
	})

	t.Run("empty answer falls back to the default", func(t *testing.T) {
		prompter := &fakePrompter{directory: "  ", template: "Next.js + TypeScript"}
		h, _ := newTestHandler(prompter, &fakeDownloader{})

		inputs, err := h.ResolveInputs(nil)
		require.NoError(t, err)
		assert.Equal(t, "my-iota-app", inputs.ProjectDirectory)
	})

	t.Run("empty argument is treated as omitted", func(t *testing.T) {
		prompter := &fakePrompter{template: "Next.js + TypeScript"}
		h, _ := newTestHandler(prompter, &fakeDownloader{})

		inputs, err := h.ResolveInputs([]string{""})
		require.NoError(t, err)
		assert.Equal(t, "my-iota-app", inputs.ProjectDirectory)
		assert.Equal(t, 1, prompter.directoryCalls)
	})

	t.Run("prompt failures are returned", func(t *testing.T) {
		errAbort := errors.New("user aborted")

		h, _ := newTestHandler(&fakePrompter{directoryErr: errAbort}, &fakeDownloader{})
		_, err := h.ResolveInputs(nil)
		require.ErrorIs(t, err, errAbort)
		assert.Contains(t, err.Error(), "project name prompt aborted")

		h, _ = newTestHandler(&fakePrompter{templateErr: errAbort}, &fakeDownloader{})
		_, err = h.ResolveInputs([]string{"demo"})
		require.ErrorIs(t, err, errAbort)
		assert.Contains(t, err.Error(), "template selection aborted")
	})
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name    string
		inputs  Inputs
		wantErr string
	}{
		{name: "valid", inputs: Inputs{ProjectDirectory: "demo", Template: "Vite + React + TypeScript"}},
		{name: "unknown template", inputs: Inputs{ProjectDirectory: "demo", Template: "Svelte"}, wantErr: "template must be one of the available templates: Svelte"},
		{name: "missing template", inputs: Inputs{ProjectDirectory: "demo"}, wantErr: "template is a required field"},
		{name: "current directory", inputs: Inputs{ProjectDirectory: ".", Template: "Vite + React + TypeScript"}, wantErr: "project-directory must name a new directory"},
		{name: "missing directory", inputs: Inputs{Template: "Vite + React + TypeScript"}, wantErr: "project-directory is a required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(&fakePrompter{}, &fakeDownloader{})
			err := h.ValidateInputs(tt.inputs)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.True(t, h.validated)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.False(t, h.validated)
		})
	}
}

func TestExecuteRequiresValidation(t *testing.T) {
	downloader := &fakeDownloader{}
	h, _ := newTestHandler(&fakePrompter{}, downloader)

	err := h.Execute(context.Background(), Inputs{ProjectDirectory: "demo", Template: "Vite + React + TypeScript"})
	require.Error(t, err)
	assert.Zero(t, downloader.calls)
}

func TestExecuteSuccess(t *testing.T) {
	out := captureOutput(t)
	downloader := &fakeDownloader{events: []templaterepo.Event{
		{Level: templaterepo.EventInfo, Message: "fetching https://api.github.com/repos/nakamaio/iota-example-with-vite-react/tarball"},
		{Level: templaterepo.EventWarn, Message: "destination directory demo is not empty, existing files will be overwritten"},
		{Level: templaterepo.EventInfo, Message: "extracted 12 files from nakamaio/iota-example-with-vite-react"},
	}}
	h, progress := newTestHandler(&fakePrompter{template: "Vite + React + TypeScript"}, downloader)

	require.NoError(t, run(t, h, []string{"demo"}))

	assert.Equal(t, []string{"Creating your project..."}, progress.started)
	assert.Equal(t, 1, progress.stops)
	assert.Equal(t, []string{
		"fetching https://api.github.com/repos/nakamaio/iota-example-with-vite-react/tarball",
		"extracted 12 files from nakamaio/iota-example-with-vite-react",
	}, progress.updates, "info events are forwarded verbatim in order")
	require.Len(t, progress.printed, 1)
	assert.Contains(t, progress.printed[0], "is not empty")

	output := out.String()
	assert.Contains(t, output, "Project created successfully in demo!")
	assert.Contains(t, output, "Next steps:")
	assert.Contains(t, output, "cd demo")
	assert.Contains(t, output, "npm install")
	assert.Contains(t, output, "npm run dev")
}

func TestExecuteFailureReasons(t *testing.T) {
	tests := []struct {
		name     string
		outcome  templaterepo.Outcome
		contains []string
	}{
		{
			name:     "not found",
			outcome:  templaterepo.Outcome{Reason: templaterepo.ReasonNotFound, Message: "could not find repository (404 Not Found)"},
			contains: []string{"not found", "private", "https://github.com/nakamaio/iota-example-with-vite-react"},
		},
		{
			name:     "access denied",
			outcome:  templaterepo.Outcome{Reason: templaterepo.ReasonAccessDenied, Message: "could not checkout"},
			contains: []string{"Could not access", "permissions", "https://github.com/nakamaio/iota-example-with-vite-react"},
		},
		{
			name:     "rate limited",
			outcome:  templaterepo.Outcome{Reason: templaterepo.ReasonRateLimited, Message: "rate limit exceeded"},
			contains: []string{"rate limit reached", "try again later", "GITHUB_TOKEN"},
		},
		{
			name:     "unknown keeps the raw message",
			outcome:  templaterepo.Outcome{Reason: templaterepo.ReasonUnknown, Message: "disk full: no space left on device"},
			contains: []string{"Error creating project:", "disk full: no space left on device"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureOutput(t)
			errOut := captureErrorOutput(t)
			h, progress := newTestHandler(
				&fakePrompter{template: "Vite + React + TypeScript"},
				&fakeDownloader{outcome: tt.outcome},
			)

			err := run(t, h, []string{"demo"})

			require.ErrorIs(t, err, ErrProjectNotCreated)
			assert.Equal(t, 1, progress.stops)
			for _, s := range tt.contains {
				assert.Contains(t, errOut.String(), s)
			}
			assert.Empty(t, out.String(), "failures leave stdout untouched")
		})
	}
}

// blockingMaterializer never finishes until released.
type blockingMaterializer struct {
	release chan struct{}
}

func (m *blockingMaterializer) Materialize(_ context.Context, _ templaterepo.RepoSource, _ string, _ templaterepo.EmitFunc) error {
	<-m.release
	return nil
}

func TestTimeoutScenario(t *testing.T) {
	captureOutput(t)
	out := captureErrorOutput(t)

	m := &blockingMaterializer{release: make(chan struct{})}
	t.Cleanup(func() { close(m.release) })

	timeout := 50 * time.Millisecond
	h, _ := newTestHandler(&fakePrompter{template: "Vite + React + TypeScript"},
		templaterepo.NewDownloader(testutil.NewTestLogger(), m, timeout))
	h.timeout = timeout

	start := time.Now()
	err := run(t, h, []string{filepath.Join(t.TempDir(), "demo")})

	require.ErrorIs(t, err, ErrProjectNotCreated)
	assert.Contains(t, err.Error(), "timeout")
	assert.GreaterOrEqual(t, time.Since(start), timeout)
	assert.Contains(t, out.String(), "Download timed out after 50ms.")
	assert.Contains(t, out.String(), "https://github.com/nakamaio/iota-example-with-vite-react")
}

func TestNotFoundScenario(t *testing.T) {
	captureOutput(t)
	captureErrorOutput(t)

	h, _ := newTestHandler(&fakePrompter{template: "Vite + React + TypeScript"},
		templaterepo.NewDownloader(testutil.NewTestLogger(), materializerFunc(func() error {
			return errors.New("could not find repository nakamaio/iota-example-with-vite-react (404 Not Found)")
		}), time.Second))

	err := run(t, h, []string{"demo"})
	require.ErrorIs(t, err, ErrProjectNotCreated)
	assert.Contains(t, err.Error(), "not-found")
}

type materializerFunc func() error

func (f materializerFunc) Materialize(context.Context, templaterepo.RepoSource, string, templaterepo.EmitFunc) error {
	return f()
}

func TestLinePrompterResolvesInputs(t *testing.T) {
	var out bytes.Buffer
	prompter := selectPrompter(strings.NewReader("demo\n4\n"), &out)
	require.IsType(t, linePrompter{}, prompter)

	h, _ := newTestHandler(prompter, &fakeDownloader{})
	inputs, err := h.ResolveInputs(nil)
	require.NoError(t, err)

	assert.Equal(t, Inputs{ProjectDirectory: "demo", Template: "Vite + React + TypeScript"}, inputs)
	assert.Contains(t, out.String(), "What is the name of your project? [my-iota-app]")
	assert.Contains(t, out.String(), "Which template would you like to use?")
}

func TestLinePrompterDefaults(t *testing.T) {
	h, _ := newTestHandler(selectPrompter(strings.NewReader("\n\n"), &bytes.Buffer{}), &fakeDownloader{})

	inputs, err := h.ResolveInputs(nil)
	require.NoError(t, err)
	assert.Equal(t, Inputs{ProjectDirectory: "my-iota-app", Template: "Next.js + TypeScript"}, inputs)
}

func TestLinePrompterRejectsInvalidDirectory(t *testing.T) {
	h, _ := newTestHandler(selectPrompter(strings.NewReader("..\n"), &bytes.Buffer{}), &fakeDownloader{})

	_, err := h.ResolveInputs(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "project name prompt aborted")
}

type recordingMaterializer struct {
	gotSource templaterepo.RepoSource
}

func (m *recordingMaterializer) Materialize(_ context.Context, source templaterepo.RepoSource, _ string, _ templaterepo.EmitFunc) error {
	m.gotSource = source
	return nil
}

func TestExecuteDownloadsByIdentifier(t *testing.T) {
	captureOutput(t)

	m := &recordingMaterializer{}
	h, _ := newTestHandler(&fakePrompter{template: "Next.js + TypeScript + Chakra UI"},
		templaterepo.NewDownloader(testutil.NewTestLogger(), m, time.Second))

	require.NoError(t, run(t, h, []string{"demo"}))
	assert.Equal(t, templaterepo.RepoSource{Owner: "nakamaio", Repo: "iota-example-with-next-chakra"}, m.gotSource)
}
