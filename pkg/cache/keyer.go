package cache

// Keyer builds cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact for the street
	// whose encoding hashes to streetHash.
	ArtifactKey(streetHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Header   bool    `json:"header,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
	Title    string  `json:"title,omitempty"`
}

// DefaultKeyer hashes every option into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>" over the street hash and options.
func (DefaultKeyer) ArtifactKey(streetHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", streetHash, opts)
}
