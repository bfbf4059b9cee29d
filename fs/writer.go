package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/domsift"
)

// File suffixes for the artifacts written per source.
const (
	ReportSuffix = ".domsift.json"
	SampleSuffix = ".sample.html"
)

// BaseName derives the artifact base name for a source.
// Example: https://example.com/groups/feed/ → feed, page.html → page.
func BaseName(source string) (string, error) {
	if source == StdinSource {
		return "stdin", nil
	}

	if IsURL(source) {
		u, err := url.Parse(source)
		if err != nil {
			return "", domsift.Errorf(domsift.EINVALID, "invalid URL: %s", source)
		}
		p := strings.Trim(u.Path, "/")
		if p == "" {
			return "index", nil
		}
		return trimExt(path.Base(p)), nil
	}

	return trimExt(filepath.Base(source)), nil
}

func trimExt(name string) string {
	if ext := filepath.Ext(name); ext != "" && ext != name {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

// Ensure Writer implements domsift.ReportWriter at compile time.
var _ domsift.ReportWriter = (*Writer)(nil)

// Writer writes a report and its sample next to the input, or into a fixed
// output directory when one is set.
//
// Within one Writer, two sources never share artifact paths: a source whose
// base name is already taken by another source gets a hash suffix.
// Writer is safe for concurrent use.
type Writer struct {
	outDir string

	mu      sync.Mutex
	claimed map[string]string // report path -> source
}

// NewWriter creates a new Writer. An empty outDir places artifacts in the
// input file's directory, or the working directory for URLs and stdin.
func NewWriter(outDir string) *Writer {
	return &Writer{outDir: outDir, claimed: make(map[string]string)}
}

// WriteReport writes <base>.domsift.json and <base>.sample.html and returns
// their paths.
func (w *Writer) WriteReport(ctx context.Context, source string, report *domsift.Report) ([]string, error) {
	if report == nil {
		return nil, domsift.Errorf(domsift.EINVALID, "report required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := BaseName(source)
	if err != nil {
		return nil, err
	}

	dir := w.dirFor(source)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return nil, err
	}

	base = w.claim(dir, base, source)
	reportPath := filepath.Join(dir, base+ReportSuffix)
	samplePath := filepath.Join(dir, base+SampleSuffix)
	if err := writeAtomic(reportPath, buf.Bytes()); err != nil {
		return nil, err
	}
	if err := writeAtomic(samplePath, []byte(report.SampleHTML)); err != nil {
		return nil, err
	}

	return []string{reportPath, samplePath}, nil
}

// claim reserves base in dir for source and returns the base to use.
func (w *Writer) claim(dir, base, source string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	key := filepath.Join(dir, base+ReportSuffix)
	if owner, ok := w.claimed[key]; !ok || owner == source {
		w.claimed[key] = source
		return base
	}

	base = base + "-" + sourceHash(source)
	w.claimed[filepath.Join(dir, base+ReportSuffix)] = source
	return base
}

// sourceHash returns a short stable hex hash of source.
func sourceHash(source string) string {
	h := strconv.FormatUint(xxhash.Sum64String(source), 16)
	if len(h) > 8 {
		h = h[:8]
	}
	return h
}

func (w *Writer) dirFor(source string) string {
	if w.outDir != "" {
		return w.outDir
	}
	if source == StdinSource || IsURL(source) {
		return "."
	}
	return filepath.Dir(source)
}

// writeAtomic writes data to a temporary file and renames it into place so
// readers never observe a partial artifact.
func writeAtomic(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), name)
}
