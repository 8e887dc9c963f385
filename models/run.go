package models

// RunRecord is one completed archival run as stored in the run ledger.
type RunRecord struct {
	ID          int64
	Workspace   string
	Month       string // YYYY-MM
	Channels    int
	Records     int
	TablePath   string
	BundlePath  string
	Delivered   bool
	CompletedAt int64 // unix seconds
}
