package templaterepo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/nakamaio/create-iota-app/internal/constants"
)

// eventBuffer bounds how many progress events can be queued ahead of the consumer.
const eventBuffer = 32

// Materializer fetches a template tree and writes it into destDir.
type Materializer interface {
	Materialize(ctx context.Context, source RepoSource, destDir string, emit EmitFunc) error
}

// Downloader runs a Materializer under a time bound and classifies its failures.
type Downloader struct {
	logger       *zerolog.Logger
	materializer Materializer
	timeout      time.Duration
}

// NewDownloader creates a Downloader. A non-positive timeout falls back to
// constants.DefaultDownloadTimeout.
func NewDownloader(logger *zerolog.Logger, materializer Materializer, timeout time.Duration) *Downloader {
	if timeout <= 0 {
		timeout = constants.DefaultDownloadTimeout
	}
	return &Downloader{
		logger:       logger,
		materializer: materializer,
		timeout:      timeout,
	}
}

// Timeout returns the bound applied to every download.
func (d *Downloader) Timeout() time.Duration {
	return d.timeout
}

// DownloadTemplate parses an "owner/repo[#ref]" identifier and downloads it.
func (d *Downloader) DownloadTemplate(ctx context.Context, sourceIdentifier, targetDirectory string, onEvent EmitFunc) Outcome {
	source, err := ParseRepoSource(sourceIdentifier)
	if err != nil {
		return failureOutcome(RepoSource{}, ReasonUnknown, err.Error())
	}
	return d.Download(ctx, source, targetDirectory, onEvent)
}

// Download materializes source into targetDirectory and races it against the timeout.
//
// Whichever finishes first decides the outcome. On timeout the materialization is
// abandoned, not cancelled: it keeps running until it returns on its own, and its
// later result and events are discarded. Events are passed to onEvent on the
// calling goroutine, in delivery order, until the outcome is decided.
func (d *Downloader) Download(ctx context.Context, source RepoSource, targetDirectory string, onEvent EmitFunc) Outcome {
	if source.Owner == "" || source.Repo == "" {
		return failureOutcome(source, ReasonUnknown, "template source is empty")
	}
	if targetDirectory == "" {
		return failureOutcome(source, ReasonUnknown, "target directory is empty")
	}
	if onEvent == nil {
		onEvent = func(Event) {}
	}

	done := make(chan struct{})
	defer close(done)

	events := make(chan Event, eventBuffer)
	result := make(chan error, 1)

	emit := func(ev Event) {
		select {
		case events <- ev:
		case <-done:
		}
	}

	d.logger.Debug().Msgf("Downloading %s into %s (timeout %s)", source, targetDirectory, d.timeout)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("template download panicked: %v", r)
			}
		}()
		result <- d.materializer.Materialize(ctx, source, targetDirectory, emit)
	}()

	timer := time.NewTimer(d.timeout)
	defer timer.Stop()

	for {
		select {
		case ev := <-events:
			onEvent(ev)
		case err := <-result:
			drainEvents(events, onEvent)
			return d.resolve(source, err)
		case <-timer.C:
			// A result that is already available still wins over the timer.
			select {
			case err := <-result:
				drainEvents(events, onEvent)
				return d.resolve(source, err)
			default:
			}
			d.logger.Debug().Msgf("Download of %s timed out after %s, abandoning it", source, d.timeout)
			return failureOutcome(source, ReasonTimeout,
				fmt.Sprintf("download of %s timed out after %s", source, d.timeout))
		}
	}
}

func (d *Downloader) resolve(source RepoSource, err error) Outcome {
	if err == nil {
		d.logger.Debug().Msgf("Downloaded %s", source)
		return successOutcome(source)
	}

	msg := err.Error()
	reason := Classify(msg)
	d.logger.Debug().Err(err).Str("reason", reason.String()).Msgf("Download of %s failed", source)
	return failureOutcome(source, reason, msg)
}

// drainEvents forwards events that were queued before the materializer returned.
func drainEvents(events <-chan Event, onEvent EmitFunc) {
	for {
		select {
		case ev := <-events:
			onEvent(ev)
		default:
			return
		}
	}
}
