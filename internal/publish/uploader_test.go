package publish

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docpublish/internal/auth"
	"github.com/dmitrijs2005/docpublish/internal/common"
)

func TestHTTPUploader_PostsMultipartWithBasicAuth(t *testing.T) {
	var (
		mu       sync.Mutex
		got      receivedRequest
		parseErr error
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		got, parseErr = parseRequest(r)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	storage := newRecordingStorage(t, map[string]string{"notes/draft.md": "# Draft\n\nbody"})
	u := NewHTTPUploader(storage, srv.Client())
	file := mustRef(t, "notes/draft.md")

	res, err := u.Upload(context.Background(), srv.URL, auth.DeriveToken("k", "s"), file)
	require.NoError(t, err)
	assert.Same(t, file, res)

	mu.Lock()
	defer mu.Unlock()
	require.NoError(t, parseErr)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "Basic azpz", got.authorization)
	assert.Equal(t, "multipart/form-data", got.mediaType)
	assert.Equal(t, "draft.md", got.fileName)
	assert.Equal(t, "draft.md", got.partFileName)
	assert.Equal(t, "# Draft\n\nbody", got.content)
	assert.Zero(t, storage.mutations(), "uploader must not touch storage beyond reading")
}

func TestHTTPUploader_NilFile(t *testing.T) {
	u := NewHTTPUploader(newRecordingStorage(t, nil), nil)
	_, err := u.Upload(context.Background(), "http://unused.invalid", "t", nil)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestHTTPUploader_ReadFailure(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer srv.Close()

	u := NewHTTPUploader(newRecordingStorage(t, nil), srv.Client())
	_, err := u.Upload(context.Background(), srv.URL, "t", mustRef(t, "notes/deleted.md"))

	require.ErrorIs(t, err, common.ErrIO)
	assert.False(t, called.Load(), "nothing must be sent when the read fails")
}

func TestHTTPUploader_Non2xxIsUploadError(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError, http.StatusServiceUnavailable, http.StatusFound} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				if status == http.StatusFound {
					w.Header().Set("Location", "/elsewhere")
				}
				w.WriteHeader(status)
			}))
			defer srv.Close()

			client := srv.Client()
			client.CheckRedirect = func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

			u := NewHTTPUploader(newRecordingStorage(t, map[string]string{"a.md": "x"}), client)
			_, err := u.Upload(context.Background(), srv.URL, "t", mustRef(t, "a.md"))

			require.ErrorIs(t, err, common.ErrUpload)
			assert.Equal(t, int32(1), calls.Load(), "no retry")
		})
	}
}

func TestHTTPUploader_TransportErrorIsUploadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	u := NewHTTPUploader(newRecordingStorage(t, map[string]string{"a.md": "x"}), nil)
	_, err := u.Upload(context.Background(), url, "t", mustRef(t, "a.md"))
	require.ErrorIs(t, err, common.ErrUpload)
}

func TestHTTPUploader_TimeoutIsUploadError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	client := srv.Client()
	client.Timeout = 50 * time.Millisecond

	u := NewHTTPUploader(newRecordingStorage(t, map[string]string{"a.md": "x"}), client)
	_, err := u.Upload(context.Background(), srv.URL, "t", mustRef(t, "a.md"))
	require.ErrorIs(t, err, common.ErrUpload)
}

func TestHTTPUploader_InvalidEndpoint(t *testing.T) {
	u := NewHTTPUploader(newRecordingStorage(t, map[string]string{"a.md": "x"}), nil)
	_, err := u.Upload(context.Background(), "", "t", mustRef(t, "a.md"))
	require.ErrorIs(t, err, common.ErrUpload)
}
