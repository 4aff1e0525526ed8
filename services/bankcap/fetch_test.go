package bankcap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHttpFetcher(t *testing.T) {
	var userAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/banks":
			w.Write([]byte(fakePage))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fetcher, err := NewHttpFetcher(FetchOptions{UserAgent: "largestbanks-test"})
	require.NoError(t, err)

	body, err := fetcher.Fetch(context.Background(), srv.URL+"/banks")
	require.NoError(t, err)
	require.Equal(t, fakePage, body)
	require.Equal(t, "largestbanks-test", userAgent)

	_, err = fetcher.Fetch(context.Background(), srv.URL+"/missing")
	require.ErrorContains(t, err, "404")
}

func TestHttpFetcherNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	fetcher, err := NewHttpFetcher(FetchOptions{TimeoutSeconds: 1})
	require.NoError(t, err)
	_, err = fetcher.Fetch(context.Background(), url)
	require.Error(t, err)
}
