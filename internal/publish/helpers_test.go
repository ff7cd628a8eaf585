package publish

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docpublish/internal/vault"
)

// recordingStorage wraps an in-memory vault and counts mutating calls.
type recordingStorage struct {
	*vault.BillyStorage

	mu        sync.Mutex
	mkdirs    []string
	renames   [][2]string
	mkdirErr  error
	renameErr error
}

func newRecordingStorage(t *testing.T, files map[string]string) *recordingStorage {
	t.Helper()
	s := vault.NewMemoryStorage()
	for p, content := range files {
		require.NoError(t, util.WriteFile(s.Raw(), p, []byte(content), 0o644))
	}
	return &recordingStorage{BillyStorage: s}
}

// Every call holds mu so concurrent runs never touch memfs at the same time.
func (r *recordingStorage) Read(p string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.BillyStorage.Read(p)
}

func (r *recordingStorage) Stat(p string) (os.FileInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.BillyStorage.Stat(p)
}

func (r *recordingStorage) CreateFolder(p string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mkdirs = append(r.mkdirs, p)
	if r.mkdirErr != nil {
		return r.mkdirErr
	}
	return r.BillyStorage.CreateFolder(p)
}

func (r *recordingStorage) Rename(from, to string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renames = append(r.renames, [2]string{from, to})
	if r.renameErr != nil {
		return r.renameErr
	}
	return r.BillyStorage.Rename(from, to)
}

func (r *recordingStorage) mutations() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.mkdirs) + len(r.renames)
}

func (r *recordingStorage) exists(t *testing.T, p string) bool {
	t.Helper()
	_, err := r.Stat(p)
	if err == nil {
		return true
	}
	require.True(t, errors.Is(err, os.ErrNotExist), "unexpected stat error: %v", err)
	return false
}

// recordingNotifier keeps every message.
type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

// receivedRequest is what the fake endpoint saw.
type receivedRequest struct {
	method        string
	authorization string
	mediaType     string
	fileName      string
	partFileName  string
	content       string
}

// parseRequest decodes a publish request. It runs in server handlers, so it
// returns errors instead of failing the test.
func parseRequest(r *http.Request) (receivedRequest, error) {
	got := receivedRequest{method: r.Method, authorization: r.Header.Get("Authorization")}

	mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return got, err
	}
	got.mediaType = mediaType

	mr := multipart.NewReader(r.Body, params["boundary"])
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return got, err
		}
		b, err := io.ReadAll(part)
		if err != nil {
			return got, err
		}

		switch part.FormName() {
		case "filename":
			got.fileName = string(b)
		case "file":
			got.partFileName = part.FileName()
			got.content = string(b)
		default:
			return got, fmt.Errorf("unexpected form field %q", part.FormName())
		}
	}
	return got, nil
}

func mustRef(t *testing.T, p string) *vault.FileReference {
	t.Helper()
	ref, err := vault.NewFileReference(p)
	require.NoError(t, err)
	return ref
}

func hasPrefix(msgs []string, prefix string) bool {
	for _, m := range msgs {
		if strings.HasPrefix(m, prefix) {
			return true
		}
	}
	return false
}
