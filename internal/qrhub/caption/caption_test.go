package caption_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/qrhub/internal/qrhub/caption"
	"github.com/stretchr/testify/require"
)

func TestCaption(t *testing.T) {
	var (
		gotAuth string
		gotType string
		gotBody []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`[{"generated_text":" a plate of food on a table "}]`))
	}))
	defer srv.Close()

	c := caption.New(caption.Config{URL: srv.URL, APIKey: "hf_test", HTTPClient: srv.Client()})
	got, err := c.Caption(context.Background(), []byte("PNGDATA"), "image/png")
	require.NoError(t, err)
	require.Equal(t, "a plate of food on a table", got)
	require.Equal(t, "Bearer hf_test", gotAuth)
	require.Equal(t, "image/png", gotType)
	require.Equal(t, []byte("PNGDATA"), gotBody)
}

func TestCaptionNotConfigured(t *testing.T) {
	c := caption.New(caption.Config{})
	require.False(t, c.Configured())

	_, err := c.Caption(context.Background(), []byte("x"), "")
	require.ErrorIs(t, err, caption.ErrNotConfigured)
}

func TestCaptionUpstreamFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		case "/empty":
			_, _ = w.Write([]byte(`[]`))
		case "/object":
			_, _ = w.Write([]byte(`{"generated_text":"a dog"}`))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"error":"Model is loading"}`))
		}
	}))
	defer srv.Close()

	newClient := func(path string) *caption.Client {
		return caption.New(caption.Config{
			URL:        srv.URL + path,
			APIKey:     "k",
			Timeout:    50 * time.Millisecond,
			HTTPClient: srv.Client(),
		})
	}
	ctx := context.Background()

	_, err := newClient("/loading").Caption(ctx, []byte("x"), "image/jpeg")
	require.ErrorIs(t, err, caption.ErrUpstream)

	_, err = newClient("/slow").Caption(ctx, []byte("x"), "image/jpeg")
	require.ErrorIs(t, err, caption.ErrUpstream)

	_, err = newClient("/empty").Caption(ctx, []byte("x"), "image/jpeg")
	require.ErrorIs(t, err, caption.ErrUpstream)

	got, err := newClient("/object").Caption(ctx, []byte("x"), "image/jpeg")
	require.NoError(t, err)
	require.Equal(t, "a dog", got)
}
