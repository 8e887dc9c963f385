package models

import "strings"

const (
	// NoFileSentinel fills the File Path column for messages without attachments.
	NoFileSentinel = "No File"
	// MissingMarker replaces the path of an attachment whose download failed.
	MissingMarker = "MISSING"
)

// ArchiveRecord is one flat row of the archive table: exactly one
// message, one channel, one author, zero or more attachment paths.
type ArchiveRecord struct {
	Date      string
	Time      string
	User      string
	Message   string
	Channel   string
	FilePaths []string
}

// Row returns the record in fixed column order, with attachment paths
// comma-joined into the single File Path column.
func (r ArchiveRecord) Row() []string {
	paths := NoFileSentinel
	if len(r.FilePaths) > 0 {
		paths = strings.Join(r.FilePaths, ", ")
	}
	return []string{r.Date, r.Time, r.User, r.Message, r.Channel, paths}
}

// TableHeader is the fixed header row of the archive table.
var TableHeader = []string{"Date", "Time", "User", "Message", "Channel", "File Path"}
