package models

import "time"

// AttachmentRef points at a file shared with a message. It is a remote
// reference only; the resolver materializes it on local disk.
type AttachmentRef struct {
	RemoteURL   string
	DisplayName string
}

// RawMessage is one message as returned by the history API, before
// normalization. Timestamp is the authoritative ordering key.
type RawMessage struct {
	Timestamp   time.Time
	AuthorID    string
	Text        string
	Attachments []AttachmentRef
}
