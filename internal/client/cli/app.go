package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/crmkeeper/internal/client/api"
	"github.com/dmitrijs2005/crmkeeper/internal/client/app"
	"github.com/dmitrijs2005/crmkeeper/internal/client/guard"
	"github.com/dmitrijs2005/crmkeeper/internal/common"
)

// App is the terminal view over one app.State. It owns the single input
// reader shared by the REPL and the prompts.
type App struct {
	state    *app.State
	reader   *bufio.Reader
	out      io.Writer
	location string
}

func NewApp(state *app.State, in io.Reader, out io.Writer) *App {
	return &App{state: state, reader: bufio.NewReader(in), out: out, location: guard.PathHome}
}

// Run restores the persisted session, moves to the page the session may
// see and serves commands until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.state.Session.Load(ctx); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}

	start := guard.PathHome
	if st := a.state.Session.Snapshot(); st.IsAuthenticated {
		if own, ok := guard.DashboardFor(st.Role); ok {
			start = own
		}
		a.printf("Welcome back, %s.\n", st.User.DisplayName())
	} else {
		a.printf("Welcome to CRM. Type 'help' for commands.\n")
	}
	a.moveTo(start)

	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.state.Session.IsAuthenticated()
}

// getStatus renders the prompt status, e.g. "(Ann manager @ /manager)".
func (a *App) getStatus() string {
	st := a.state.Session.Snapshot()
	if !st.IsAuthenticated || st.User == nil {
		return fmt.Sprintf("(guest @ %s)", a.location)
	}
	return fmt.Sprintf("(%s %s @ %s)", st.User.DisplayName(), st.Role, a.location)
}

// moveTo sets the location to wherever the guard lets the session land
// when asking for path, and returns the decision for path itself.
func (a *App) moveTo(path string) guard.Decision {
	st := a.state.Session.Snapshot()
	d := guard.Navigate(st.IsAuthenticated, st.Role, path)
	a.location = guard.Resolve(st.IsAuthenticated, st.Role, path)
	return d
}

// do runs fn in its own scope, so logging out or quitting cancels it. A
// failure is recorded as a notification.
func (a *App) do(ctx context.Context, fn func(ctx context.Context) error) error {
	ctx, cancel := a.state.Scope(ctx)
	defer cancel()

	if err := fn(ctx); err != nil {
		a.state.Notes.Error(ctx, api.Message(err))
		return err
	}
	return nil
}

// done reports a successful mutation to the user.
func (a *App) done(ctx context.Context, msg string) {
	a.state.Notes.Success(ctx, msg)
	a.printf("%s\n", msg)
}

// requireLogin guards commands that need a session.
func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return fmt.Errorf("please log in first: %w", common.ErrNotAuthenticated)
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
