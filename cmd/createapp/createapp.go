package createapp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nakamaio/create-iota-app/internal/constants"
	"github.com/nakamaio/create-iota-app/internal/prompt"
	"github.com/nakamaio/create-iota-app/internal/runtime"
	"github.com/nakamaio/create-iota-app/internal/templaterepo"
	"github.com/nakamaio/create-iota-app/internal/ui"
	"github.com/nakamaio/create-iota-app/internal/validation"
)

// ErrProjectNotCreated is returned after the failure diagnostics were printed.
var ErrProjectNotCreated = errors.New("project was not created")

const creatingMessage = "Creating your project..."

type Inputs struct {
	ProjectDirectory string `validate:"required,project_dir" cli:"project-directory"`
	Template         string `validate:"required,catalog_template" cli:"template"`
}

// Prompter asks the user for the values not given on the command line.
type Prompter interface {
	ProjectDirectory(defaultDirectory string) (string, error)
	Template(titles []string) (string, error)
}

// Downloader materializes the template named by an "owner/repo[#ref]"
// identifier into a directory within a time bound.
type Downloader interface {
	DownloadTemplate(ctx context.Context, sourceIdentifier, targetDirectory string, onEvent templaterepo.EmitFunc) templaterepo.Outcome
}

// Progress is the transient indicator shown while downloading.
type Progress interface {
	Start(message string)
	Update(message string)
	Println(text string)
	Stop()
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	catalog := templaterepo.DefaultCatalog()

	createCmd := &cobra.Command{
		Use:     constants.AppName + " [project-directory]",
		Short:   "Create a new IOTA application from a template",
		Long:    "Create a new IOTA application from a template.\n\n" + renderCatalog(catalog),
		Example: fmt.Sprintf("  %s\n  %s my-dapp", constants.AppName, constants.AppName),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHandler(runtimeContext, catalog, selectPrompter(cmd.InOrStdin(), cmd.OutOrStdout()))

			inputs, err := h.ResolveInputs(args)
			if err != nil {
				return err
			}
			if err := h.ValidateInputs(inputs); err != nil {
				return err
			}
			return h.Execute(cmd.Context(), inputs)
		},
	}

	return createCmd
}

type handler struct {
	log        *zerolog.Logger
	catalog    *templaterepo.Catalog
	prompter   Prompter
	downloader Downloader
	progress   Progress
	timeout    time.Duration
	validated  bool
}

func newHandler(ctx *runtime.Context, catalog *templaterepo.Catalog, prompter Prompter) *handler {
	timeout := constants.DefaultDownloadTimeout
	var token string
	if ctx.Settings != nil {
		timeout = ctx.Settings.DownloadTimeout
		token = ctx.Settings.GitHubToken
	}

	client := templaterepo.NewClient(ctx.Logger, templaterepo.WithToken(token))

	return &handler{
		log:        ctx.Logger,
		catalog:    catalog,
		prompter:   prompter,
		downloader: templaterepo.NewDownloader(ctx.Logger, client, timeout),
		progress:   ui.NewSpinner(),
		timeout:    timeout,
	}
}

// ResolveInputs takes the directory from args, prompting when it is absent,
// then always prompts for the template.
func (h *handler) ResolveInputs(args []string) (Inputs, error) {
	var inputs Inputs

	if len(args) > 0 {
		inputs.ProjectDirectory = strings.TrimSpace(args[0])
	}

	if inputs.ProjectDirectory == "" {
		dir, err := h.prompter.ProjectDirectory(constants.DefaultProjectName)
		if err != nil {
			return Inputs{}, fmt.Errorf("project name prompt aborted: %w", err)
		}
		inputs.ProjectDirectory = strings.TrimSpace(dir)
	}

	if inputs.ProjectDirectory == "" {
		inputs.ProjectDirectory = constants.DefaultProjectName
	}

	template, err := h.prompter.Template(h.catalog.Titles())
	if err != nil {
		return Inputs{}, fmt.Errorf("template selection aborted: %w", err)
	}
	inputs.Template = template

	h.log.Debug().Str("directory", inputs.ProjectDirectory).Str("template", inputs.Template).Msg("Resolved inputs")
	return inputs, nil
}

func (h *handler) ValidateInputs(inputs Inputs) error {
	v, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to create validator: %w", err)
	}

	if err := v.RegisterRule("catalog_template", func(fl validator.FieldLevel) bool {
		_, ok := h.catalog.Lookup(fl.Field().String())
		return ok
	}, "{0} must be one of the available templates: {1}"); err != nil {
		return err
	}

	if err := v.Struct(inputs); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	h.validated = true
	return nil
}

func (h *handler) Execute(ctx context.Context, inputs Inputs) error {
	if !h.validated {
		return fmt.Errorf("handler inputs not validated")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	template, _ := h.catalog.Lookup(inputs.Template)

	h.progress.Start(creatingMessage)
	outcome := h.downloader.DownloadTemplate(ctx, template.Source.String(), inputs.ProjectDirectory, h.forward)
	h.progress.Stop()

	if outcome.Success() {
		reportSuccess(inputs.ProjectDirectory)
		return nil
	}

	h.log.Debug().Str("reason", outcome.Reason.String()).Msg(outcome.Message)
	reportFailure(diagnose(outcome, h.timeout))
	return fmt.Errorf("%w: %s", ErrProjectNotCreated, outcome.Reason)
}

// forward shows info events as the spinner message and prints warnings above it.
func (h *handler) forward(ev templaterepo.Event) {
	h.log.Debug().Str("level", ev.Level.String()).Msg(ev.Message)

	switch ev.Level {
	case templaterepo.EventWarn:
		h.progress.Println(ui.RenderWarning("! " + ev.Message))
	default:
		h.progress.Update(ev.Message)
	}
}

type huhPrompter struct{}

func (huhPrompter) ProjectDirectory(defaultDirectory string) (string, error) {
	return ui.Input("What is the name of your project?",
		ui.WithDefault(defaultDirectory),
		ui.WithValidate(validation.IsValidProjectDirectory),
	)
}

func (huhPrompter) Template(titles []string) (string, error) {
	return ui.Select("Which template would you like to use?", ui.StringOptions(titles))
}

// selectPrompter uses interactive forms on a terminal and plain line prompts otherwise.
func selectPrompter(in io.Reader, out io.Writer) Prompter {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return huhPrompter{}
	}
	return linePrompter{prompter: prompt.NewLinePrompter(in, out)}
}

type linePrompter struct {
	prompter *prompt.LinePrompter
}

func (p linePrompter) ProjectDirectory(defaultDirectory string) (string, error) {
	var dir string
	err := p.prompter.SimplePrompt("What is the name of your project?", defaultDirectory, func(input string) error {
		if err := validation.IsValidProjectDirectory(input); err != nil {
			return err
		}
		dir = input
		return nil
	})
	return dir, err
}

func (p linePrompter) Template(titles []string) (string, error) {
	var title string
	err := p.prompter.SelectPrompt("Which template would you like to use?", titles, func(choice string) error {
		title = choice
		return nil
	})
	return title, err
}
