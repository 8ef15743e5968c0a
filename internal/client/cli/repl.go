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
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	RequestReset(ctx context.Context) error
	ConfirmReset(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL reads commands from scanner and dispatches them to a until EOF
// or "exit"/"quit".
//
//	Not logged in: help, signup, login, reset, confirm-reset, status, exit
//	Logged in:     help, whoami, refresh, status, logout, confirm-reset, exit
//
// Handler errors are printed and the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("sk (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, refresh, status, logout, confirm-reset, exit")
			} else {
				printlnFn("Available commands: signup, login, reset, confirm-reset, status, exit")
			}

		case "signup":
			err = a.Signup(ctx)

		case "login":
			err = a.Login(ctx)

		case "reset":
			err = a.RequestReset(ctx)

		case "confirm-reset":
			err = a.ConfirmReset(ctx)

		case "whoami":
			err = a.WhoAmI(ctx)

		case "refresh":
			err = a.Refresh(ctx)

		case "status":
			err = a.Status(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
