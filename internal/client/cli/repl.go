package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/pantrykeeper/internal/client/client"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
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

	Dashboard(ctx context.Context) error

	ListLogs(ctx context.Context) error
	AddLog(ctx context.Context) error
	EditLog(ctx context.Context, args []string) error
	DeleteLog(ctx context.Context, args []string) error

	ListInventory(ctx context.Context, args []string) error
	AddItem(ctx context.Context) error
	EditItem(ctx context.Context, args []string) error
	DeleteItem(ctx context.Context, args []string) error

	ListImages(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	DeleteImage(ctx context.Context, args []string) error

	Resources(ctx context.Context, args []string) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: (d)ashboard, logs, addlog, editlog <id>, rmlog <id>, " +
		"(inv)entory [category], additem, edititem <id>, rmitem <id>, " +
		"images, upload <path>, rmimage <id>, resources [category] [article|video], " +
		"whoami, logout, exit"
)

// runREPL starts a simple read–eval–print loop for the PantryKeeper CLI.
//
// It reads a line from reader, parses the first token as the command and the
// rest as arguments, and dispatches to methods on 'a'. Commands other than
// help, register, login and exit require a stored session. The loop exits on
// EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are reported to the user and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pk %s> ", statusFn()))

		line, rerr := reader.ReadString('\n')
		if rerr != nil && (!errors.Is(rerr, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", describe(err))
		}

		if rerr != nil {
			return
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "help":
		if a.isLoggedIn() {
			printlnFn(helpLoggedIn)
		} else {
			printlnFn(helpLoggedOut)
		}
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	}

	protected := map[string]func() error{
		"whoami":    func() error { return a.WhoAmI(ctx) },
		"logout":    func() error { return a.Logout(ctx) },
		"d":         func() error { return a.Dashboard(ctx) },
		"dashboard": func() error { return a.Dashboard(ctx) },
		"logs":      func() error { return a.ListLogs(ctx) },
		"addlog":    func() error { return a.AddLog(ctx) },
		"editlog":   func() error { return a.EditLog(ctx, args) },
		"rmlog":     func() error { return a.DeleteLog(ctx, args) },
		"inv":       func() error { return a.ListInventory(ctx, args) },
		"inventory": func() error { return a.ListInventory(ctx, args) },
		"additem":   func() error { return a.AddItem(ctx) },
		"edititem":  func() error { return a.EditItem(ctx, args) },
		"rmitem":    func() error { return a.DeleteItem(ctx, args) },
		"images":    func() error { return a.ListImages(ctx) },
		"upload":    func() error { return a.Upload(ctx, args) },
		"rmimage":   func() error { return a.DeleteImage(ctx, args) },
		"resources": func() error { return a.Resources(ctx, args) },
	}

	fn, ok := protected[cmd]
	if !ok {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !a.isLoggedIn() {
		printlnFn("Please log in first")
		return nil
	}
	return fn()
}

// describe renders err for the user.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		return "your session has expired, please log in again"
	case errors.Is(err, client.ErrAuthFailure) && errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	case errors.Is(err, client.ErrAuthFailure):
		return "authentication failed"
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, common.ErrNotFound):
		return "no record with that id"
	}
	return err.Error()
}
