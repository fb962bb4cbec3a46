package supabase

import (
	"assetup/internal/service/common"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(Config{
		BaseURL:    srv.URL + "/storage/v1/object/",
		Bucket:     "project-assets",
		ServiceKey: "service-key",
		Timeout:    5 * time.Second,
	})
	t.Cleanup(c.Close)
	return c
}

func TestObjectURL(t *testing.T) {
	c := NewClient(Config{BaseURL: "https://x.supabase.co/storage/v1/object/", Bucket: "project-assets"})

	assert.Equal(t, "https://x.supabase.co/storage/v1/object/project-assets/4613-grp-a/02-DFD-2.jpg",
		c.ObjectURL("4613-grp-a/02-DFD-2.jpg"))
	assert.Equal(t, "https://x.supabase.co/storage/v1/object/project-assets/a%20b/c%23d.jpg",
		c.ObjectURL("a b/c#d.jpg"))
}

func TestExists(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantExists bool
		wantErr    bool
	}{
		{name: "found", status: http.StatusOK, wantExists: true},
		{name: "not found", status: http.StatusNotFound, wantExists: false},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
		{name: "bad request", status: http.StatusBadRequest, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodHead, r.Method)
				assert.Equal(t, "/storage/v1/object/project-assets/grp/a.jpg", r.URL.Path)
				assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
				assert.Equal(t, "service-key", r.Header.Get("apikey"))
				w.WriteHeader(tt.status)
			})

			exists, err := c.Exists(context.Background(), "grp/a.jpg")
			assert.Equal(t, tt.wantExists, exists)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var statusErr *common.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, "head", statusErr.Op)
		})
	}
}

func TestExists_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c := NewClient(Config{BaseURL: srv.URL, Bucket: "b", ServiceKey: "k", Timeout: time.Second})

	exists, err := c.Exists(context.Background(), "a.jpg")
	assert.False(t, exists)
	assert.Error(t, err)
}

func TestPut(t *testing.T) {
	var gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/storage/v1/object/project-assets/4613-unit-1-main.webp", r.URL.Path)
		assert.Equal(t, "Bearer service-key", r.Header.Get("Authorization"))
		assert.Equal(t, "service-key", r.Header.Get("apikey"))
		assert.Equal(t, "image/webp", r.Header.Get("Content-Type"))
		assert.Equal(t, "true", r.Header.Get("x-upsert"))
		assert.Equal(t, int64(len("webp-bytes")), r.ContentLength)
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"Key":"project-assets/4613-unit-1-main.webp"}`))
	})

	err := c.Put(context.Background(), "4613-unit-1-main.webp", strings.NewReader("webp-bytes"), int64(len("webp-bytes")), "image/webp")
	require.NoError(t, err)
	assert.Equal(t, "webp-bytes", gotBody)
}

func TestPut_StatusClassification(t *testing.T) {
	tests := []struct {
		status  int
		wantErr bool
	}{
		{http.StatusOK, false},
		{http.StatusCreated, false},
		{http.StatusBadRequest, true},
		{http.StatusForbidden, true},
		{http.StatusRequestEntityTooLarge, true},
		{http.StatusBadGateway, true},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.Copy(io.Discard, r.Body)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":"nope"}`))
			})

			err := c.Put(context.Background(), "a.jpg", strings.NewReader("x"), 1, "image/jpeg")
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			var statusErr *common.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, `{"error":"nope"}`, statusErr.Body)
		})
	}
}
