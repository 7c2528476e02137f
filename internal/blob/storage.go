// Package blob stores photo attachments in object storage.
package blob

import "context"

// Storage is the blob storage contract. Upload failures degrade a save into
// a local-only unsynced save; they are never fatal to the caller.
type Storage interface {
	// Upload writes data under path and returns the public URL.
	Upload(ctx context.Context, data []byte, path string) (string, error)

	// Delete removes a previously uploaded object by its URL.
	Delete(ctx context.Context, url string) error
}
