// Package cli provides the interactive booky console.
//
// It wires configuration, the persisted session, the API client and one view
// synchronizer per resource screen into a REPL. Typical flow: restore the
// previous session, sign in if needed, then browse and edit records.
//
// Key features:
//   - Register / Login / Logout / Whoami
//   - Screens: orders, products, categories, items
//   - Per screen: list, search, clear, create, update, delete, show
//
// Resource screens are behind the access gate: without a valid session the
// REPL prints a sign-in hint instead of running the command.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
