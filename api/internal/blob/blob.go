// Package blob abstracts the single snapshot slot the scan history is
// persisted into. Backends must treat Save as whole-document replacement.
package blob

import "context"

// Store is one named snapshot slot. Load returns nil data when the
// snapshot has never been written.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}
