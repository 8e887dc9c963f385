package archiver

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"slack-archiver/models"
)

// Resolver downloads message attachments into the run's media
// directory under deterministic names.
type Resolver struct {
	api      API
	mediaDir string
	loc      *time.Location
}

// NewResolver creates an attachment resolver writing into mediaDir.
func NewResolver(api API, mediaDir string, loc *time.Location) *Resolver {
	return &Resolver{api: api, mediaDir: mediaDir, loc: loc}
}

// Resolve downloads one attachment to local storage. The local name is
// a function of the message timestamp, the author display name, and
// the original file name, so repeated files with the same original
// name never collide. Any failure is logged and reported as not-ok;
// it never escalates past the attachment boundary.
func (r *Resolver) Resolve(ctx context.Context, ref models.AttachmentRef, msgTime time.Time, author string) (string, bool) {
	if err := os.MkdirAll(r.mediaDir, 0755); err != nil {
		log.Printf("Error creating media directory %s: %v", r.mediaDir, err)
		return "", false
	}

	name := fmt.Sprintf("%s_%s_%s",
		msgTime.In(r.loc).Format("20060102-150405"),
		sanitizeName(author),
		sanitizeName(ref.DisplayName))
	path := filepath.Join(r.mediaDir, name)

	out, err := os.Create(path)
	if err != nil {
		log.Printf("Error creating file %s for attachment %s: %v", path, ref.DisplayName, err)
		return "", false
	}

	if err := r.api.DownloadFile(ctx, ref.RemoteURL, out); err != nil {
		out.Close()
		os.Remove(path) // drop the partial file
		log.Printf("Error downloading attachment %s (message at %s): %v",
			ref.DisplayName, msgTime.Format(time.RFC3339), err)
		return "", false
	}
	if err := out.Close(); err != nil {
		os.Remove(path)
		log.Printf("Error finishing download of %s: %v", ref.DisplayName, err)
		return "", false
	}
	return path, true
}

// sanitizeName makes a string safe for use as a file name component.
func sanitizeName(s string) string {
	if s == "" {
		return "unknown"
	}
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", " ", "_", ":", "-",
		"*", "-", "?", "-", "\"", "-", "<", "-", ">", "-", "|", "-",
	)
	return replacer.Replace(s)
}
