//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/domsift"
	"github.com/fwojciec/domsift/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ domsift.Fetcher = (*rod.Fetcher)(nil)

func serveHTML(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, `<html><body>never read</body></html>`)

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_ReturnsRenderedFeed(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, `<!DOCTYPE html>
<html>
<head><title>Feed</title></head>
<body>
<div id="feed">Loading...</div>
<script>
const item = document.createElement('div');
item.setAttribute('role', 'article');
item.textContent = 'A rendered feed item with enough text';
document.getElementById('feed').replaceChildren(item);
</script>
</body>
</html>`)

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, `role="article"`)
	assert.NotContains(t, html, "Loading...")
}

func TestFetcher_Fetch_SettleWaitsForLateContent(t *testing.T) {
	t.Parallel()

	srv := serveHTML(t, `<html><body><div id="feed"></div>
<script>
setTimeout(() => { document.getElementById('feed').textContent = 'late item'; }, 100);
</script></body></html>`)

	fetcher, err := rod.NewFetcher(rod.WithSettle(500 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "late item")
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_Close_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, domsift.EINVALID, domsift.ErrorCode(err))
	assert.Contains(t, domsift.ErrorMessage(err), "closed")
}
