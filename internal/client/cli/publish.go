package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/docpublish/internal/common"
	"github.com/dmitrijs2005/docpublish/internal/vault"
)

// Publish starts a background run for the document at path. An unknown or
// empty path still runs the pipeline without a document, and a path that
// cannot be looked up is reported through the pipeline as well, so every
// invocation ends in exactly one notification.
func (a *App) Publish(ctx context.Context, path string) error {
	var file *vault.FileReference
	if path != "" {
		ref, err := vault.Resolve(a.storage, path)
		switch {
		case err == nil:
			file = ref
		case errors.Is(err, common.ErrNotFound):
			a.logger.Warn(ctx, "document not found", "path", path)
		default:
			a.pipeline.Abort(ctx, path, fmt.Errorf("resolve %s: %w", path, err))
			return nil
		}
	}

	s := a.store.Snapshot()
	runCtx := context.WithoutCancel(ctx)

	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		a.pipeline.Run(runCtx, s, file)
	}()
	return nil
}
