package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const signInHint = "Please sign in first"

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn(ctx context.Context) bool
	hasScreen(name string) bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Screen(ctx context.Context, name, action string, args []string) error
}

// runREPL starts a simple read–eval–print loop for the booky console.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. The same reader feeds the prompts of the
// commands themselves, and out should be the writer the commands print to. The loop exits on EOF or when the user types "exit"
// or "quit".
//
// Commands:
//
//	help                      show available commands
//	register | login          authenticate
//	logout | whoami           session housekeeping
//	<screen> [action] [id]    screen is orders, products, categories or items;
//	                          action is list (default), search, clear, refresh,
//	                          create, update, delete or show
//	exit | quit               leave the program
//
// Screen commands pass through the access gate first. Errors returned by
// command handlers are ignored here; handlers report them to the user.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, out io.Writer) {
	for {
		fmt.Fprintf(out, "booky %s > ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch {
		case cmd == "help":
			if a.isLoggedIn(ctx) {
				fmt.Fprintln(out, "Available commands: orders, products, categories, items, whoami, logout, exit")
				fmt.Fprintln(out, "Screen actions: list, search, clear, refresh, create, update <id>, delete <id>, show <id>")
			} else {
				fmt.Fprintln(out, "Available commands: register, login, exit")
			}

		case cmd == "register":
			_ = a.Register(ctx)

		case cmd == "login":
			_ = a.Login(ctx)

		case cmd == "logout":
			_ = a.Logout(ctx)

		case cmd == "whoami":
			_ = a.WhoAmI(ctx)

		case cmd == "exit", cmd == "quit":
			fmt.Fprintln(out, "Bye!")
			return

		case a.hasScreen(cmd):
			if !a.isLoggedIn(ctx) {
				fmt.Fprintln(out, signInHint)
				break
			}
			action := "list"
			if len(parts) > 1 {
				action = strings.ToLower(parts[1])
			}
			var args []string
			if len(parts) > 2 {
				args = parts[2:]
			}
			_ = a.Screen(ctx, cmd, action, args)

		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if err != nil {
			return
		}
	}
}
