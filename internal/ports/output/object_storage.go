package output

import "context"

// Object is a file handed to object storage.
type Object struct {
	// Name is a hint used to build a readable key; it may be empty.
	Name        string
	ContentType string
	Body        []byte
}

type ObjectStorage interface {
	// Upload stores the object and returns an opaque URI referencing it.
	Upload(ctx context.Context, obj Object) (string, error)
}
