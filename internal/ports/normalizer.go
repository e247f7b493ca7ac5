package ports

// Normalizer defines the interface for text normalization.
//
// Implementations must be total (never panic on any input) and idempotent:
// Normalize(Normalize(x)) == Normalize(x).
type Normalizer interface {
	Normalize(text string) string
}
