package cache

// ScopedKeyer wraps a Keyer with a prefix so several environments can share
// one backend without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer means [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// PuzzleKey generates a prefixed key for a normalized puzzle.
func (k *ScopedKeyer) PuzzleKey(inputHash string) string {
	return k.prefix + k.inner.PuzzleKey(inputHash)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(puzzleHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(puzzleHash, opts)
}
