package archiver

import (
	"context"
	"log"
	"path/filepath"
)

// Delivery sends the run's artifacts by direct message to the
// configured recipient.
type Delivery struct {
	api API
}

// NewDelivery creates a delivery agent backed by the given API.
func NewDelivery(api API) *Delivery {
	return &Delivery{api: api}
}

// Deliver opens (or reuses) a DM with the recipient and uploads the
// table and the bundle as two independent operations; one failing does
// not prevent attempting the other. If the DM cannot be opened,
// delivery is skipped entirely, the artifacts remain on local storage
// for manual recovery, and false is returned. An empty bundlePath
// means the run produced no media and only the table is sent.
func (d *Delivery) Deliver(ctx context.Context, recipientID, tablePath, bundlePath string) bool {
	dmID, err := d.api.OpenDM(ctx, recipientID)
	if err != nil {
		log.Printf("Error opening DM with %s, artifacts kept at %s and %s: %v",
			recipientID, tablePath, bundlePath, err)
		return false
	}

	delivered := false
	if err := d.api.UploadFile(ctx, dmID, tablePath, filepath.Base(tablePath),
		"Here is the monthly archive."); err != nil {
		log.Printf("Error uploading table %s to %s: %v", tablePath, dmID, err)
	} else {
		delivered = true
	}

	if bundlePath != "" {
		if err := d.api.UploadFile(ctx, dmID, bundlePath, filepath.Base(bundlePath),
			"Attached media files for the monthly archive."); err != nil {
			log.Printf("Error uploading bundle %s to %s: %v", bundlePath, dmID, err)
		} else {
			delivered = true
		}
	}
	return delivered
}
