package createapp

import (
	"fmt"
	"time"

	"github.com/nakamaio/create-iota-app/internal/constants"
	"github.com/nakamaio/create-iota-app/internal/templaterepo"
	"github.com/nakamaio/create-iota-app/internal/ui"
)

// diagnostic is the user-facing explanation of a failed download.
type diagnostic struct {
	Headline string
	Details  []string
	URL      string
}

func diagnose(outcome templaterepo.Outcome, timeout time.Duration) diagnostic {
	url := outcome.Source.URL()

	switch outcome.Reason {
	case templaterepo.ReasonTimeout:
		return diagnostic{
			Headline: fmt.Sprintf("Download timed out after %s.", timeout),
			Details: []string{
				"This can happen when:",
				"  - the repository is private or no longer exists",
				"  - your network connection is slow or offline",
				"  - GitHub is rate limiting your requests",
				"Check that the template is reachable:",
			},
			URL: url,
		}
	case templaterepo.ReasonNotFound:
		return diagnostic{
			Headline: "Template repository not found.",
			Details:  []string{"It may be private or may have been deleted:"},
			URL:      url,
		}
	case templaterepo.ReasonAccessDenied:
		return diagnostic{
			Headline: "Could not access the template repository.",
			Details:  []string{"Check the repository visibility and your permissions:"},
			URL:      url,
		}
	case templaterepo.ReasonRateLimited:
		return diagnostic{
			Headline: "GitHub rate limit reached.",
			Details: []string{
				"Please try again later.",
				fmt.Sprintf("Setting %s raises the limit.", constants.GitHubTokenEnvVar),
			},
		}
	default:
		return diagnostic{
			Headline: outcome.Message,
		}
	}
}

func reportSuccess(directory string) {
	ui.Success(fmt.Sprintf("Project created successfully in %s!", directory))
	ui.Line()
	ui.Print("Next steps:")
	ui.Command("  cd " + directory)
	ui.Command("  " + constants.InstallCommand)
	ui.Command("  " + constants.DevCommand)
}

// reportFailure writes to stderr so a piped stdout only carries the success output.
func reportFailure(d diagnostic) {
	w := ui.ErrorOutput()
	fmt.Fprintln(w, ui.RenderError("✗ Error creating project:"))
	fmt.Fprintln(w, d.Headline)
	for _, line := range d.Details {
		fmt.Fprintln(w, ui.RenderDim("  "+line))
	}
	if d.URL != "" {
		fmt.Fprintln(w, ui.RenderURL(d.URL))
	}
}
