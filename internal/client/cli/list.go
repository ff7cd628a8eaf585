package cli

import (
	"context"
	"fmt"
)

// List prints every draft, i.e. each document that is not inside a
// published folder.
func (a *App) List(ctx context.Context) error {
	refs, err := a.storage.List()
	if err != nil {
		return fmt.Errorf("list vault: %w", err)
	}

	n := 0
	for _, ref := range refs {
		if ref.IsPublished() {
			continue
		}
		printlnFn(ref.Path)
		n++
	}
	if n == 0 {
		printlnFn("No drafts.")
	}
	return nil
}
