package archiver

import (
	"context"
	"io"
	"time"

	"slack-archiver/models"
)

// HistoryRequest asks for one page of channel history inside a time range.
type HistoryRequest struct {
	ChannelID string
	Oldest    time.Time
	Latest    time.Time
	Cursor    string
	Limit     int
}

// HistoryPage is one page of history plus the cursor for the next one.
// An empty NextCursor means the range is exhausted.
type HistoryPage struct {
	Messages   []models.RawMessage
	NextCursor string
}

// API is the chat-platform surface the pipeline consumes. The concrete
// implementation lives in the slackapi package; tests substitute fakes.
type API interface {
	// ListChannels enumerates all public and private channels visible
	// to the bot credential, fully paginated.
	ListChannels(ctx context.Context) ([]models.Channel, error)

	// JoinChannel joins the given channel. Joining a channel the bot is
	// already a member of succeeds.
	JoinChannel(ctx context.Context, channelID string) error

	// HistoryPage fetches one page of messages for the request.
	HistoryPage(ctx context.Context, req HistoryRequest) (HistoryPage, error)

	// LookupUser resolves a user ID to a display name.
	LookupUser(ctx context.Context, userID string) (string, error)

	// WorkspaceName resolves the workspace's display name.
	WorkspaceName(ctx context.Context) (string, error)

	// OpenDM opens (or reuses) a direct conversation with the user and
	// returns its channel ID.
	OpenDM(ctx context.Context, userID string) (string, error)

	// DownloadFile streams an authenticated download of url into w.
	DownloadFile(ctx context.Context, url string, w io.Writer) error

	// UploadFile uploads the local file at path to the given channel.
	UploadFile(ctx context.Context, channelID, path, title, comment string) error
}
