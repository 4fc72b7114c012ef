package ports

// Hasher computes content digests of resolved modules.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Digest returns a stable content digest for the file at path.
	Digest(path string) (string, error)
}
