// Package fs reads HTML sources and writes reduction reports to disk.
package fs

import (
	"context"
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"strings"

	"github.com/fwojciec/domsift"
)

// StdinSource names standard input as a source.
const StdinSource = "-"

// Ensure Loader implements domsift.Loader at compile time.
var _ domsift.Loader = (*Loader)(nil)

// Loader resolves a source to raw HTML. URLs are delegated to a Fetcher,
// "-" reads the configured stdin, anything else is a file path.
type Loader struct {
	stdin   io.Reader
	fetcher domsift.Fetcher
}

// NewLoader returns a Loader. fetcher may be nil, in which case URL sources
// are rejected.
func NewLoader(stdin io.Reader, fetcher domsift.Fetcher) *Loader {
	return &Loader{stdin: stdin, fetcher: fetcher}
}

// Load returns the HTML for source.
func (l *Loader) Load(ctx context.Context, source string) (string, error) {
	switch {
	case source == "":
		return "", domsift.Errorf(domsift.EINVALID, "source required")
	case source == StdinSource:
		if l.stdin == nil {
			return "", domsift.Errorf(domsift.EINVALID, "stdin is not available")
		}
		b, err := io.ReadAll(l.stdin)
		if err != nil {
			return "", err
		}
		return string(b), nil
	case IsURL(source):
		if l.fetcher == nil {
			return "", domsift.Errorf(domsift.EINVALID, "cannot fetch %s: no fetcher configured", source)
		}
		return l.fetcher.Fetch(ctx, source)
	}

	b, err := os.ReadFile(source)
	if errors.Is(err, iofs.ErrNotExist) {
		return "", domsift.Errorf(domsift.ENOTFOUND, "file not found: %s", source)
	}
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// IsURL reports whether source is an http or https URL.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
