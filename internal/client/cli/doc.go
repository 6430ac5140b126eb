// Package cli provides the interactive CRM command-line client.
//
// It is the view layer over app.State: every command reads store snapshots,
// dispatches store operations under a per-command scope and prints the
// outcome. Navigation between dashboards goes through the route guard, so
// the prompt always shows a location the session is allowed to be at.
//
// The REPL is started via App.Run(ctx), which restores the persisted
// session and blocks until the user exits. See runREPL for the command set.
package cli
