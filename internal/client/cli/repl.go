package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Verify(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Get(ctx context.Context, resource string) error
	Post(ctx context.Context, resource, body string) error
	Put(ctx context.Context, resource, body string) error
	Update(ctx context.Context, resource, slug, body string) error
	Delete(ctx context.Context, resource string) error
}

// splitCommand returns the command word, up to n argument words, and the rest
// of the line verbatim, so JSON bodies keep their spaces.
func splitCommand(line string, n int) (cmd string, args []string, rest string) {
	rest = strings.TrimSpace(line)
	for i := 0; i <= n && rest != ""; i++ {
		word := rest
		if j := strings.IndexAny(rest, " \t"); j >= 0 {
			word, rest = rest[:j], strings.TrimSpace(rest[j:])
		} else {
			rest = ""
		}
		if i == 0 {
			cmd = word
		} else {
			args = append(args, word)
		}
	}
	return cmd, args, rest
}

// runREPL starts a simple read-eval-print loop for the POS client.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help                           - show available commands
//	  - login                          - authenticate
//	  - verify                         - re-check the stored token
//	  - exit | quit                    - leave the program
//
//	Logged in:
//	  - help                           - show available commands
//	  - whoami                         - show the session user
//	  - get <resource>                 - GET a resource
//	  - post <resource> [json]         - POST a JSON body
//	  - put <resource> [json]          - PUT a JSON body
//	  - update <resource> <slug> [json] - PUT to resource/slug
//	  - delete <resource>              - DELETE a resource
//	  - verify                         - re-check the stored token
//	  - logout                         - log out
//	  - exit | quit                    - leave the program
//
// Resource commands are sent even when logged out; the backend decides. A
// missing JSON body is read interactively.
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pos %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		cmd, _, _ := splitCommand(scanner.Text(), 0)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, get, post, put, update, delete, verify, logout, exit")
			} else {
				printlnFn("Available commands: login, verify, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "verify":
			_ = a.Verify(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "get", "delete":
			_, args, _ := splitCommand(scanner.Text(), 1)
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <resource>", cmd))
				continue
			}
			if cmd == "get" {
				_ = a.Get(ctx, args[0])
			} else {
				_ = a.Delete(ctx, args[0])
			}

		case "post", "put":
			_, args, body := splitCommand(scanner.Text(), 1)
			if len(args) == 0 {
				printlnFn(fmt.Sprintf("Usage: %s <resource> [json]", cmd))
				continue
			}
			if cmd == "post" {
				_ = a.Post(ctx, args[0], body)
			} else {
				_ = a.Put(ctx, args[0], body)
			}

		case "update":
			_, args, body := splitCommand(scanner.Text(), 2)
			if len(args) < 2 {
				printlnFn("Usage: update <resource> <slug> [json]")
				continue
			}
			_ = a.Update(ctx, args[0], args[1], body)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
