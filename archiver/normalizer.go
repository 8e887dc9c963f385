package archiver

import (
	"context"
	"log"
	"time"

	"slack-archiver/models"
)

// Text placeholders for the archive table.
const placeholderText = "N/A"

// Normalizer maps one raw message to one flat archive record,
// resolving the author display name and any attached files.
type Normalizer struct {
	api      API
	resolver *Resolver
	loc      *time.Location

	// users caches display names across the run; the same authors
	// appear in many messages.
	users map[string]string
}

// NewNormalizer creates a record normalizer using the given resolver
// for attachments.
func NewNormalizer(api API, resolver *Resolver, loc *time.Location) *Normalizer {
	return &Normalizer{
		api:      api,
		resolver: resolver,
		loc:      loc,
		users:    make(map[string]string),
	}
}

// Normalize produces exactly one record for the message, plus the
// local paths of the attachments that resolved successfully. The
// record's file-path field has one entry per attachment in original
// order, each a local path or the missing marker; a message without
// attachments gets no entries (the sentinel is applied on output).
func (n *Normalizer) Normalize(ctx context.Context, msg models.RawMessage, channelName string) (models.ArchiveRecord, []string) {
	local := msg.Timestamp.In(n.loc)
	author := n.displayName(ctx, msg.AuthorID)

	text := msg.Text
	if text == "" {
		text = placeholderText
	}

	record := models.ArchiveRecord{
		Date:    local.Format("01-02-2006"),
		Time:    local.Format("15:04"),
		User:    author,
		Message: text,
		Channel: channelName,
	}

	var resolved []string
	for _, ref := range msg.Attachments {
		// Each attachment resolves independently; one failure never
		// blocks the others or drops the message.
		path, ok := n.resolver.Resolve(ctx, ref, msg.Timestamp, author)
		if ok {
			record.FilePaths = append(record.FilePaths, path)
			resolved = append(resolved, path)
		} else {
			record.FilePaths = append(record.FilePaths, models.MissingMarker)
		}
	}
	return record, resolved
}

// displayName resolves a user ID to a display name, caching results
// for the run. Lookup failure falls back to the raw ID and is never
// fatal.
func (n *Normalizer) displayName(ctx context.Context, userID string) string {
	if userID == "" {
		return placeholderText
	}
	if name, ok := n.users[userID]; ok {
		return name
	}
	name, err := n.api.LookupUser(ctx, userID)
	if err != nil || name == "" {
		log.Printf("Could not resolve user %s, using raw ID: %v", userID, err)
		name = userID
	}
	n.users[userID] = name
	return name
}
