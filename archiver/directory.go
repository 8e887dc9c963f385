package archiver

import (
	"context"
	"fmt"

	"slack-archiver/models"
)

// Directory enumerates channels and ensures the bot is a member of
// each before its history is fetched.
type Directory struct {
	api API
}

// NewDirectory creates a channel directory backed by the given API.
func NewDirectory(api API) *Directory {
	return &Directory{api: api}
}

// List enumerates all public and private channels visible to the bot.
// Failure here is run-fatal for the caller; nothing else can proceed
// without the channel set.
func (d *Directory) List(ctx context.Context) ([]models.Channel, error) {
	channels, err := d.api.ListChannels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing channels: %w", err)
	}
	return channels, nil
}

// EnsureMember joins the channel if the bot is not already a member.
// Already-member and newly-joined are both success; joining twice never
// changes the outcome. An explicit denial is returned to the caller,
// which skips the channel for this run.
func (d *Directory) EnsureMember(ctx context.Context, ch *models.Channel) error {
	if ch.Membership == models.Member {
		return nil
	}
	if err := d.api.JoinChannel(ctx, ch.ID); err != nil {
		ch.Membership = models.NotMember
		return fmt.Errorf("joining channel %s (%s): %w", ch.Name, ch.ID, err)
	}
	ch.Membership = models.Member
	return nil
}
