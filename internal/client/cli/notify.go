package cli

import "sync"

// terminalNotifier prints pipeline notifications between REPL prompts.
// Publishes run in the background, so writes are serialised.
type terminalNotifier struct {
	mu sync.Mutex
}

func (n *terminalNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	printlnFn("[docpublish]", msg)
}
