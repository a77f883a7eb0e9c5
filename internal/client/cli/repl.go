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
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Verify(ctx context.Context, token string) error
	Resend(ctx context.Context, email string) error
	Complete(ctx context.Context) error
	Go(ctx context.Context, path string) error
	Whoami(ctx context.Context) error
	Jobs(ctx context.Context, page string) error
	Logout(ctx context.Context) error
	settle()
}

// runREPL starts a simple read–eval–print loop for the CameYa CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. After every command the current
// page is redrawn if the route gate moved it. The loop exits on scanner EOF,
// on context cancellation, or when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help            show available commands
//	  - register        create an account
//	  - login           authenticate
//	  - verify <token>  confirm an email address
//	  - resend [email]  send the verification email again
//	  - go <path>       open a page
//	  - exit | quit     leave the program
//
//	Logged in:
//	  - complete        fill in the onboarding form
//	  - jobs [page]     browse open jobs (students)
//	  - whoami          show the session
//	  - logout          log out
//
// Errors returned by command handlers are ignored here; handlers report
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	a.settle()
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("cameya %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: complete, jobs [page], go <path>, whoami, resend, verify <token>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, verify <token>, resend [email], go <path>, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "verify":
			if len(args) == 0 {
				printlnFn("Usage: verify <token>")
				continue
			}
			_ = a.Verify(ctx, args[0])

		case "resend":
			email := ""
			if len(args) > 0 {
				email = args[0]
			}
			_ = a.Resend(ctx, email)

		case "complete":
			_ = a.Complete(ctx)

		case "go":
			if len(args) == 0 {
				printlnFn("Usage: go <path>")
				continue
			}
			_ = a.Go(ctx, args[0])

		case "whoami":
			_ = a.Whoami(ctx)

		case "jobs":
			page := ""
			if len(args) > 0 {
				page = args[0]
			}
			_ = a.Jobs(ctx, page)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		a.settle()
	}
}
