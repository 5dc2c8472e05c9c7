package port

import (
	"context"
	"encoding/json"
)

// Store is the remote hierarchical document store that holds orders and
// their change logs. Paths are slash-delimited, e.g. "orders/483920117".
type Store interface {
	// Get fetches the document at path into out, returning false when absent
	Get(ctx context.Context, path string, out any) (bool, error)

	// Set writes the document at path, overwriting whatever is there
	Set(ctx context.Context, path string, value any) error

	// Update merges the given fields into the document at path, leaving
	// every other field untouched
	Update(ctx context.Context, path string, fields map[string]any) error

	// PushAppend appends value under path with a generated child key that
	// preserves insertion order
	PushAppend(ctx context.Context, path string, value any) error

	// Children returns every document one level below path keyed by child
	// key, empty map when the path has none
	Children(ctx context.Context, path string) (map[string]json.RawMessage, error)

	// Appended returns the values pushed under path, in insertion order
	Appended(ctx context.Context, path string) ([]json.RawMessage, error)

	// AppendKeys lists the child keys below path that hold appended sequences
	AppendKeys(ctx context.Context, path string) ([]string, error)
}
