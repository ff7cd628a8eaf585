package receiver

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/docpublish/internal/auth"
	"github.com/dmitrijs2005/docpublish/internal/common"
	"github.com/dmitrijs2005/docpublish/internal/logging"
)

// multipartMemory is how much of a form ParseMultipartForm keeps in memory
// before spilling file parts to disk.
const multipartMemory = 8 << 20

// Document describes one stored upload.
type Document struct {
	Key      string `json:"key"`
	FileName string `json:"filename"`
	Size     int64  `json:"size"`
}

type Handler struct {
	store     BlobStore
	apiKey    string
	apiSecret string
	maxBytes  int64
	logger    logging.Logger
	now       func() time.Time
}

func NewHandler(store BlobStore, c *Config, l logging.Logger) *Handler {
	return &Handler{
		store:     store,
		apiKey:    c.APIKey,
		apiSecret: c.APISecret,
		maxBytes:  c.MaxUploadBytes,
		logger:    l.With("module", "receiver"),
		now:       time.Now,
	}
}

// Publish stores the document of one publish request.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !auth.CheckBasic(r, h.apiKey, h.apiSecret) {
		h.fail(ctx, w, common.ErrUnauthorized)
		return
	}

	if r.ContentLength > h.maxBytes {
		h.fail(ctx, w, fmt.Errorf("%w: %w", common.ErrInvalidPayload, &http.MaxBytesError{Limit: h.maxBytes}))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		h.fail(ctx, w, fmt.Errorf("%w: %w", common.ErrInvalidPayload, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(common.FormFieldFile)
	if err != nil {
		h.fail(ctx, w, fmt.Errorf("%w: %s part: %w", common.ErrInvalidPayload, common.FormFieldFile, err))
		return
	}
	defer file.Close()

	name, err := documentName(r.FormValue(common.FormFieldFileName), header)
	if err != nil {
		h.fail(ctx, w, err)
		return
	}

	key := StorageKey(h.now().UTC(), name)
	contentType := header.Header.Get("Content-Type")
	if err := h.store.Put(ctx, key, file, header.Size, contentType); err != nil {
		h.fail(ctx, w, err)
		return
	}

	h.logger.Info(ctx, "document stored", "key", key, "size", header.Size)
	writeJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Data:    Document{Key: key, FileName: name, Size: header.Size},
	})
}

// documentName picks the base name from the filename field, falling back to
// the file part's own filename. Directory components are stripped.
func documentName(field string, header *multipart.FileHeader) (string, error) {
	name := field
	if name == "" {
		name = header.Filename
	}
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" || name == ".." || name == "" {
		return "", fmt.Errorf("%w: missing %s", common.ErrInvalidPayload, common.FormFieldFileName)
	}
	return name, nil
}

func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		h.logger.Warn(ctx, "rejected credentials")
		w.Header().Set("WWW-Authenticate", `Basic realm="docpublish"`)
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, common.ErrInvalidPayload):
		h.logger.Warn(ctx, "invalid publish request", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "document too large")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(ctx, "storing document", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// Health answers liveness probes.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: map[string]string{"status": "ok"}})
}
