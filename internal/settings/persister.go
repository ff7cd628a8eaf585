package settings

import "context"

// Persister is the host's private key-value storage for this extension.
//
// LoadData returns (nil, nil) when nothing was stored yet. Keys that were
// never written are simply absent from the map.
type Persister interface {
	LoadData(ctx context.Context) (map[string]string, error)
	SaveData(ctx context.Context, data map[string]string) error
	Close() error
}
