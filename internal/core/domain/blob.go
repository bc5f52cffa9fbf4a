package domain

// BlobCategory selects the storage destination and MIME allow-list for
// an uploaded file. The two categories map one-to-one onto the multipart
// field names accepted by the intake endpoint.
type BlobCategory string

const (
	CategoryPhoto BlobCategory = "photo"
	CategoryCV    BlobCategory = "cv"
)

// Valid reports whether c names a known category.
func (c BlobCategory) Valid() bool {
	return c == CategoryPhoto || c == CategoryCV
}
