package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/crmkeeper/internal/client/api"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Leads(ctx context.Context, args []string) error
	Lead(ctx context.Context, id string) error
	Create(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id, status string) error
	SetPriority(ctx context.Context, id, priority string) error
	Delete(ctx context.Context, id string) error
	MyLeads(ctx context.Context) error
	Stats(ctx context.Context) error
	Filters(ctx context.Context) error
	Admin(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	Notes(ctx context.Context, args []string) error
}

const (
	helpGuest    = "Available commands: register, login, go <path>, notes, exit"
	helpLoggedIn = "Available commands: whoami, go <path>, leads [status= priority= owner= search=|clear], lead <id>, " +
		"create, edit <id>, status <id> <status>, priority <id> <priority>, delete <id>, my, stats, filters, " +
		"admin [dashboard|managers|sales|records|audit] [page= limit= search= status= action=], users [sales], " +
		"notes [clear|rm <id>], logout, exit"
)

// runREPL starts a simple read–eval–print loop for the CRM CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands and wrong arity are
// reported back to the user. The loop exits on EOF, when ctx is done, or
// when the user types "exit" or "quit".
//
// Errors returned by command handlers are printed with their user-facing
// message and do not stop the loop.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("crm %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpGuest)
			}

		case "register":
			cmdErr = a.Register(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "go":
			if len(args) != 1 {
				printlnFn("Usage: go <path>")
				continue
			}
			cmdErr = a.Go(ctx, args[0])

		case "leads", "l":
			cmdErr = a.Leads(ctx, args)

		case "lead", "show":
			if len(args) != 1 {
				printlnFn("Usage: lead <id>")
				continue
			}
			cmdErr = a.Lead(ctx, args[0])

		case "create":
			cmdErr = a.Create(ctx)

		case "edit":
			if len(args) != 1 {
				printlnFn("Usage: edit <id>")
				continue
			}
			cmdErr = a.Edit(ctx, args[0])

		case "status":
			if len(args) != 2 {
				printlnFn("Usage: status <id> <New|Contacted|Qualified|Proposal|Negotiation|Won|Lost>")
				continue
			}
			cmdErr = a.SetStatus(ctx, args[0], args[1])

		case "priority":
			if len(args) != 2 {
				printlnFn("Usage: priority <id> <High|Medium|Low>")
				continue
			}
			cmdErr = a.SetPriority(ctx, args[0], args[1])

		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			cmdErr = a.Delete(ctx, args[0])

		case "my":
			cmdErr = a.MyLeads(ctx)

		case "stats":
			cmdErr = a.Stats(ctx)

		case "filters":
			cmdErr = a.Filters(ctx)

		case "admin":
			cmdErr = a.Admin(ctx, args)

		case "users":
			cmdErr = a.Users(ctx, args)

		case "notes":
			cmdErr = a.Notes(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", api.Message(cmdErr))
		}
	}
}
