package publish

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dmitrijs2005/docpublish/internal/auth"
	"github.com/dmitrijs2005/docpublish/internal/common"
	"github.com/dmitrijs2005/docpublish/internal/vault"
)

// DefaultTimeout bounds a single publish request.
const DefaultTimeout = 30 * time.Second

// Uploader sends one document to the publish endpoint.
type Uploader interface {
	Upload(ctx context.Context, endpoint, token string, file *vault.FileReference) (*vault.FileReference, error)
}

// HTTPUploader posts documents as multipart/form-data.
type HTTPUploader struct {
	storage vault.Storage
	client  *http.Client
}

// NewHTTPUploader reads documents from storage and posts them with client.
// A nil client gets one with DefaultTimeout.
func NewHTTPUploader(storage vault.Storage, client *http.Client) *HTTPUploader {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPUploader{storage: storage, client: client}
}

// Upload reads file, encodes it and posts it to endpoint with a Basic
// credential built from token. On success the same reference is returned.
func (u *HTTPUploader) Upload(ctx context.Context, endpoint, token string, file *vault.FileReference) (*vault.FileReference, error) {
	if file == nil {
		return nil, fmt.Errorf("%w: no document supplied", common.ErrNotFound)
	}

	content, err := u.storage.Read(file.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", common.ErrIO, file.Path, err)
	}

	body, contentType, err := encodeMultipart(file.Name, content)
	if err != nil {
		return nil, fmt.Errorf("%w: encode %s: %w", common.ErrUpload, file.Path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", common.ErrUpload, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(common.AuthorizationHeaderName, auth.BasicHeader(token))

	resp, err := u.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: post %s: %w", common.ErrUpload, endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: post %s: unexpected status %s", common.ErrUpload, endpoint, resp.Status)
	}

	return file, nil
}

// encodeMultipart builds the request body: a text field with the base name
// and a file part with the raw bytes.
func encodeMultipart(name string, content []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField(common.FormFieldFileName, name); err != nil {
		return nil, "", err
	}
	part, err := w.CreateFormFile(common.FormFieldFile, name)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
