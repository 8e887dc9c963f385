// Package slackapi wraps the Slack Web API behind the narrow surface
// the archival pipeline consumes, translating API failures into the
// package's error taxonomy.
package slackapi

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"

	"slack-archiver/archiver"
	"slack-archiver/models"
)

// Client is the concrete archiver.API backed by a Slack Web API client.
type Client struct {
	api       *slack.Client
	pageLimit int
}

var _ archiver.API = (*Client)(nil)

// NewClient creates a new Slack API client for the given bot token.
// pageLimit bounds the page size of paginated calls; zero selects a
// sensible default.
func NewClient(token string, pageLimit int) *Client {
	return NewClientWith(slack.New(token), pageLimit)
}

// NewClientWith wraps an existing Slack Web API client, letting the
// caller share one underlying client with other components.
func NewClientWith(api *slack.Client, pageLimit int) *Client {
	if pageLimit <= 0 {
		pageLimit = 200
	}
	return &Client{
		api:       api,
		pageLimit: pageLimit,
	}
}

// AuthCheck verifies the bot credential and returns the bot's user ID.
// A KindAuth error here is run-fatal for callers.
func (c *Client) AuthCheck(ctx context.Context) (string, error) {
	resp, err := c.api.AuthTestContext(ctx)
	if err != nil {
		return "", classify("auth.test", err)
	}
	return resp.UserID, nil
}

// ListChannels enumerates all public and private channels visible to
// the bot, following the list cursor to exhaustion.
func (c *Client) ListChannels(ctx context.Context) ([]models.Channel, error) {
	var all []models.Channel
	cursor := ""
	for {
		channels, next, err := c.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
			Types:           []string{"public_channel", "private_channel"},
			ExcludeArchived: true,
			Limit:           c.pageLimit,
			Cursor:          cursor,
		})
		if err != nil {
			return nil, classify("conversations.list", err)
		}
		for _, ch := range channels {
			state := models.NotMember
			if ch.IsMember {
				state = models.Member
			}
			all = append(all, models.Channel{ID: ch.ID, Name: ch.Name, Membership: state})
		}
		if next == "" {
			return all, nil
		}
		cursor = next
	}
}

// JoinChannel joins the given channel. Joining a channel the bot is
// already a member of is a successful no-op on the Slack side.
func (c *Client) JoinChannel(ctx context.Context, channelID string) error {
	_, _, _, err := c.api.JoinConversationContext(ctx, channelID)
	return classify("conversations.join", err)
}

// HistoryPage fetches one page of channel history for the request.
// Slack returns messages in reverse-chronological order; ordering is
// left to the fetcher, which merges all pages.
func (c *Client) HistoryPage(ctx context.Context, req archiver.HistoryRequest) (archiver.HistoryPage, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = c.pageLimit
	}
	resp, err := c.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
		ChannelID: req.ChannelID,
		Oldest:    formatTimestamp(req.Oldest),
		Latest:    formatTimestamp(req.Latest),
		Inclusive: true,
		Limit:     limit,
		Cursor:    req.Cursor,
	})
	if err != nil {
		return archiver.HistoryPage{}, classify("conversations.history", err)
	}

	page := archiver.HistoryPage{}
	for _, msg := range resp.Messages {
		ts, err := parseTimestamp(msg.Timestamp)
		if err != nil {
			continue // malformed timestamp, nothing to order by
		}
		raw := models.RawMessage{
			Timestamp: ts,
			AuthorID:  msg.User,
			Text:      msg.Text,
		}
		for _, f := range msg.Files {
			url := f.URLPrivateDownload
			if url == "" {
				url = f.URLPrivate
			}
			raw.Attachments = append(raw.Attachments, models.AttachmentRef{
				RemoteURL:   url,
				DisplayName: f.Name,
			})
		}
		page.Messages = append(page.Messages, raw)
	}
	if resp.HasMore {
		page.NextCursor = resp.ResponseMetaData.NextCursor
	}
	return page, nil
}

// LookupUser resolves a user ID to its display name, preferring the
// profile display name over the real name and account name.
func (c *Client) LookupUser(ctx context.Context, userID string) (string, error) {
	user, err := c.api.GetUserInfoContext(ctx, userID)
	if err != nil {
		return "", classify("users.info", err)
	}
	switch {
	case user.Profile.DisplayName != "":
		return user.Profile.DisplayName, nil
	case user.RealName != "":
		return user.RealName, nil
	default:
		return user.Name, nil
	}
}

// WorkspaceName resolves the workspace's display name.
func (c *Client) WorkspaceName(ctx context.Context) (string, error) {
	team, err := c.api.GetTeamInfoContext(ctx)
	if err != nil {
		return "", classify("team.info", err)
	}
	return team.Name, nil
}

// OpenDM opens (or reuses) a direct conversation with the user.
func (c *Client) OpenDM(ctx context.Context, userID string) (string, error) {
	channel, _, _, err := c.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return "", classify("conversations.open", err)
	}
	return channel.ID, nil
}

// DownloadFile performs an authenticated streamed download of url into w.
func (c *Client) DownloadFile(ctx context.Context, url string, w io.Writer) error {
	return classify("files.download", c.api.GetFileContext(ctx, url, w))
}

// UploadFile uploads the local file at path to the given channel.
func (c *Client) UploadFile(ctx context.Context, channelID, path, title, comment string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat upload file %s: %w", path, err)
	}
	_, err = c.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		Channel:        channelID,
		File:           path,
		FileSize:       int(info.Size()),
		Filename:       filepath.Base(path),
		Title:          title,
		InitialComment: comment,
	})
	return classify("files.upload", err)
}

// formatTimestamp renders t as a Slack message timestamp string.
func formatTimestamp(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000)
}

// parseTimestamp parses a Slack "seconds.microseconds" timestamp.
func parseTimestamp(ts string) (time.Time, error) {
	sec := ts
	micro := "0"
	if i := strings.IndexByte(ts, '.'); i >= 0 {
		sec, micro = ts[:i], ts[i+1:]
	}
	secs, err := strconv.ParseInt(sec, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
	}
	micros, err := strconv.ParseInt(micro, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
	}
	return time.Unix(secs, micros*1000), nil
}
