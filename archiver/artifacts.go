package archiver

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"slack-archiver/models"
)

// Builder assembles the run's two artifacts: the CSV table of archive
// records and the zip bundle of downloaded attachments.
type Builder struct {
	outputDir string
}

// NewBuilder creates an artifact builder writing into outputDir.
func NewBuilder(outputDir string) *Builder {
	return &Builder{outputDir: outputDir}
}

// BuildTable serializes the records as CSV in fixed column order. The
// file name embeds the workspace and the archived month so successive
// months never overwrite each other.
func (b *Builder) BuildTable(records []models.ArchiveRecord, workspace string, month time.Time) (string, error) {
	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", b.outputDir, err)
	}

	name := fmt.Sprintf("slack_archive_%s_%s.csv", sanitizeName(workspace), month.Format("2006_01"))
	path := filepath.Join(b.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating table file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(models.TableHeader); err != nil {
		return "", fmt.Errorf("writing table header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return "", fmt.Errorf("writing table row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing table %s: %w", path, err)
	}
	return path, nil
}

// BuildBundle zips exactly the given local files into a single
// archive, entries named by base name with no directory nesting. The
// deterministic attachment naming keeps base names unique within a run.
func (b *Builder) BuildBundle(paths []string, workspace string, month time.Time) (string, error) {
	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", b.outputDir, err)
	}

	name := fmt.Sprintf("slack_archive_%s_%s_media.zip", sanitizeName(workspace), month.Format("2006_01"))
	path := filepath.Join(b.outputDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating bundle file %s: %w", path, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, p := range paths {
		if err := addBundleEntry(zw, p); err != nil {
			zw.Close()
			return "", err
		}
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("finalizing bundle %s: %w", path, err)
	}
	return path, nil
}

func addBundleEntry(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s for bundling: %w", path, err)
	}
	defer src.Close()

	entry, err := zw.Create(filepath.Base(path))
	if err != nil {
		return fmt.Errorf("creating bundle entry for %s: %w", path, err)
	}
	if _, err := io.Copy(entry, src); err != nil {
		return fmt.Errorf("bundling %s: %w", path, err)
	}
	return nil
}
