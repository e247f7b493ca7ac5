// logger.go
package guesssimilarity

import (
	"os"

	"github.com/baditaflorin/l"

	"github.com/baditaflorin/go_guess_similarity/internal/adapters/logger"
)

// newDefaultLogger builds the logger behind the package-level helpers: the
// adapter defaults, written synchronously to stderr.
func newDefaultLogger() (l.Logger, error) {
	cfg := logger.DefaultConfig()
	cfg.Output = os.Stderr
	cfg.AsyncWrite = false
	return l.NewStandardFactory().CreateLogger(cfg)
}
