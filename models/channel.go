package models

// MembershipState tracks whether the archiving bot is a member of a channel.
type MembershipState int

const (
	MembershipUnknown MembershipState = iota
	Member
	NotMember
)

// Channel represents a Slack channel visible to the bot.
type Channel struct {
	ID         string
	Name       string
	Membership MembershipState
}
