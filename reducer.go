package domsift

import "context"

// Reducer turns a raw HTML document into a Report.
type Reducer interface {
	// Reduce processes one document. It returns EEMPTY for empty or
	// whitespace-only input and EPROCESSING for any other failure.
	// No partial report is returned alongside an error.
	Reduce(html string) (*Report, error)
}

// Loader resolves a source (a file path, "-" for stdin, or a URL) to raw HTML.
type Loader interface {
	Load(ctx context.Context, source string) (string, error)
}

// Renderer formats a report for display.
type Renderer interface {
	Render(report *Report) (string, error)
}

// TokenCounter counts tokens in text for a specific model.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}
