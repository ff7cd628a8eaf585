package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docpublish/internal/settings"
)

// ShowSettings prints the current settings with the secret masked.
func (a *App) ShowSettings(ctx context.Context) error {
	s := a.store.Snapshot()
	for _, f := range settings.Fields {
		v := s.Get(f)
		switch {
		case f == settings.FieldAPISecret:
			v = mask(v)
		case v == "":
			v = "(not set)"
		}
		printlnFn(fmt.Sprintf("%-10s %s", f, v))
	}
	return nil
}

// Set changes one field and persists it immediately. An empty value for the
// secret is read from the terminal without echo (or from the next input
// line when stdin is piped); for other fields it clears the value.
func (a *App) Set(ctx context.Context, name, value string) error {
	f, err := settings.ParseField(name)
	if err != nil {
		return err
	}

	if f == settings.FieldAPISecret && value == "" {
		secret, err := GetSecret(os.Stdout, "Enter API secret", a.lines)
		if err != nil {
			return fmt.Errorf("read secret: %w", err)
		}
		value = string(secret)
		clear(secret)
	}

	if err := a.store.Update(ctx, f, value); err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("%s saved", f))
	return nil
}
