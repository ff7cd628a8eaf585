// Package cli is the interactive host of the publisher.
//
// It wires configuration, the vault storage, the settings store and the
// publish pipeline behind a small REPL. The App lifecycle mirrors an editor
// extension: Activate loads the persisted settings, commands run until the
// user exits, Deactivate waits for in-flight publishes and releases the
// settings backend.
//
// Commands:
//   - publish <path>        upload a document and move it into published/
//   - list                  show drafts (documents outside any published folder)
//   - settings              show the publisher settings, secret masked
//   - set <field> [value]   change one setting; apiSecret without a value prompts
//   - help, exit | quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
