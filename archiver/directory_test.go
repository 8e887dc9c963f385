package archiver

import (
	"context"
	"errors"
	"testing"

	"slack-archiver/models"
)

func TestEnsureMemberIdempotent(t *testing.T) {
	api := newFakeAPI()
	dir := NewDirectory(api)
	ch := models.Channel{ID: "C1", Name: "general", Membership: models.NotMember}

	if err := dir.EnsureMember(context.Background(), &ch); err != nil {
		t.Fatalf("first EnsureMember failed: %v", err)
	}
	if ch.Membership != models.Member {
		t.Fatalf("membership = %v, want Member", ch.Membership)
	}

	// Calling again never produces a different outcome.
	if err := dir.EnsureMember(context.Background(), &ch); err != nil {
		t.Fatalf("second EnsureMember failed: %v", err)
	}
	if api.joinCalls["C1"] != 1 {
		t.Errorf("join called %d times, want 1 (already-member is a no-op)", api.joinCalls["C1"])
	}
}

func TestEnsureMemberDenied(t *testing.T) {
	api := newFakeAPI()
	api.joinErrs["C2"] = errors.New("access_denied")
	dir := NewDirectory(api)
	ch := models.Channel{ID: "C2", Name: "private-stuff", Membership: models.NotMember}

	if err := dir.EnsureMember(context.Background(), &ch); err == nil {
		t.Fatal("expected denial to surface as an error")
	}
	if ch.Membership != models.NotMember {
		t.Errorf("membership = %v, want NotMember after denial", ch.Membership)
	}
}

func TestListPropagatesFailure(t *testing.T) {
	api := newFakeAPI()
	api.listErr = errors.New("invalid_auth")
	dir := NewDirectory(api)

	if _, err := dir.List(context.Background()); err == nil {
		t.Fatal("expected listing failure to propagate; it is run-fatal")
	}
}
