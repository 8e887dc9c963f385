// Package archiver implements the monthly archival pipeline: channel
// discovery and membership assurance, time-windowed message retrieval,
// attachment resolution, record normalization, artifact assembly, and
// delivery to the configured recipient.
package archiver

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"slack-archiver/models"
)

// Config carries the settings the pipeline needs. It is constructed
// once at startup and passed in explicitly.
type Config struct {
	RecipientUserID string
	OutputDir       string
	MediaDir        string
	PageLimit       int
	Location        *time.Location
}

// RunReport summarizes one archival run.
type RunReport struct {
	Workspace  string
	Window     Window
	Channels   int
	Records    int
	TablePath  string
	BundlePath string
	Delivered  bool
}

// Archiver runs the archival pipeline once per invocation. Each run is
// a fresh, best-effort snapshot of its time window; nothing is cached
// between runs except the files written to disk.
type Archiver struct {
	api       API
	cfg       Config
	directory *Directory
	fetcher   *Fetcher
	builder   *Builder
	delivery  *Delivery
}

// New creates an archiver from an API client and configuration.
func New(api API, cfg Config) *Archiver {
	return &Archiver{
		api:       api,
		cfg:       cfg,
		directory: NewDirectory(api),
		fetcher:   NewFetcher(api, cfg.PageLimit),
		builder:   NewBuilder(cfg.OutputDir),
		delivery:  NewDelivery(api),
	}
}

// Run executes one archival run over the window. Per-channel and
// per-message failures are contained and logged; only a total failure
// to enumerate channels aborts the run. A run that produced zero
// records ends quietly with no artifacts and no delivery attempt.
func (a *Archiver) Run(ctx context.Context, window Window) (*RunReport, error) {
	report := &RunReport{Window: window, Workspace: a.workspaceName(ctx)}

	log.Printf("Starting archival run for %s, window [%s, %s)",
		window.Label(), window.Start.Format(time.RFC3339), window.End.Format(time.RFC3339))

	channels, err := a.directory.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("archival run for %s aborted: %w", window.Label(), err)
	}
	report.Channels = len(channels)

	// Downloads for this run are scoped to their own directory so the
	// bundle can never pick up files from a prior run.
	mediaDir := filepath.Join(a.cfg.MediaDir, window.Label())
	resolver := NewResolver(a.api, mediaDir, a.cfg.Location)
	normalizer := NewNormalizer(a.api, resolver, a.cfg.Location)

	var records []models.ArchiveRecord
	var resolved []string
	for i := range channels {
		ch := &channels[i]
		if err := a.directory.EnsureMember(ctx, ch); err != nil {
			log.Printf("Skipping channel %s for this run: %v", ch.Name, err)
			continue
		}
		log.Printf("Fetching messages from channel: %s", ch.Name)
		for _, msg := range a.fetcher.Fetch(ctx, *ch, window) {
			record, paths := normalizer.Normalize(ctx, msg, ch.Name)
			records = append(records, record)
			resolved = append(resolved, paths...)
		}
	}

	if len(records) == 0 {
		log.Printf("No messages found for %s, skipping artifact creation.", window.Label())
		return report, nil
	}
	report.Records = len(records)

	tablePath, err := a.builder.BuildTable(records, report.Workspace, window.Month())
	if err != nil {
		return report, fmt.Errorf("building table for %s: %w", window.Label(), err)
	}
	report.TablePath = tablePath
	log.Printf("Table %s created with %d records.", tablePath, len(records))

	if len(resolved) > 0 {
		bundlePath, err := a.builder.BuildBundle(resolved, report.Workspace, window.Month())
		if err != nil {
			// The table still exists and can be delivered on its own.
			log.Printf("Error building bundle for %s: %v", window.Label(), err)
		} else {
			report.BundlePath = bundlePath
			log.Printf("Bundle %s created with %d files.", bundlePath, len(resolved))
		}
	}

	report.Delivered = a.delivery.Deliver(ctx, a.cfg.RecipientUserID, report.TablePath, report.BundlePath)
	return report, nil
}

// workspaceName resolves the workspace display name for artifact
// naming, falling back to a fixed label when the lookup fails.
func (a *Archiver) workspaceName(ctx context.Context) string {
	name, err := a.api.WorkspaceName(ctx)
	if err != nil || name == "" {
		log.Printf("Could not resolve workspace name, using fallback: %v", err)
		return "workspace"
	}
	return name
}
