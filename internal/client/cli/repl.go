package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasOpen() bool
	Cities(ctx context.Context, args []string) error
	Generate(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Open(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	Check(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Reset(ctx context.Context) error
	Save(ctx context.Context) error
	Sync(ctx context.Context) error
	Delete(ctx context.Context, args []string) error
	Share(ctx context.Context) error
	Weather(ctx context.Context) error
	Defaults(ctx context.Context, args []string) error
	Owner(ctx context.Context, args []string) error
	CloseChecklist(ctx context.Context) error
}

const (
	helpGeneral   = "Available commands: cities, (g)enerate, (l)ist, open, delete, sync, defaults, owner, exit"
	helpChecklist = "Checklist commands: show, check, remove, add, reset, save, share, weather, close"
)

// runREPL starts a simple read-eval-print loop for the Luggify CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on EOF or
// when the user types "exit" or "quit". The prompt is printed only when
// prompt is set, so piped scripts produce clean output.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Always:
//	  - help                     show available commands
//	  - cities <prefix>          search city names
//	  - generate [city from to]  generate a checklist and open it
//	  - list                     list my checklists (local first, then merged)
//	  - open <slug|#n>           open a checklist
//	  - delete <slug|#n>         delete a checklist
//	  - sync                     push every checklist with pending edits
//	  - defaults [add|remove x]  manage items added to new checklists
//	  - owner [id]               show or set the owner id
//	  - exit | quit              leave the program
//
//	With an open checklist:
//	  - show                     print the checklist
//	  - check <item|#n>          toggle an item
//	  - remove <item|#n>         remove an item
//	  - add <text>               add an item
//	  - reset                    uncheck everything
//	  - save                     push the edit state to the server
//	  - share                    save an owned copy under the owner id
//	  - weather                  refresh the cached forecast
//	  - close                    close the checklist
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, prompt bool) {
	for {
		if prompt {
			printlnFn(fmt.Sprintf("luggify %s> ", statusFn()))
		}
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpGeneral)
			if a.hasOpen() {
				printlnFn(helpChecklist)
			}

		case "cities":
			cmdErr = a.Cities(ctx, args)

		case "g", "generate":
			cmdErr = a.Generate(ctx, args)

		case "l", "list":
			cmdErr = a.List(ctx)

		case "open":
			cmdErr = a.Open(ctx, args)

		case "delete":
			cmdErr = a.Delete(ctx, args)

		case "sync":
			cmdErr = a.Sync(ctx)

		case "defaults":
			cmdErr = a.Defaults(ctx, args)

		case "owner":
			cmdErr = a.Owner(ctx, args)

		case "show", "check", "remove", "add", "reset", "save", "share", "weather", "close":
			if !a.hasOpen() {
				printlnFn("No checklist open. Use 'generate' or 'open <slug>' first.")
				continue
			}
			cmdErr = dispatchChecklist(ctx, a, cmd, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

func dispatchChecklist(ctx context.Context, a execIface, cmd string, args []string) error {
	switch cmd {
	case "show":
		return a.Show(ctx)
	case "check":
		return a.Check(ctx, args)
	case "remove":
		return a.Remove(ctx, args)
	case "add":
		return a.Add(ctx, args)
	case "reset":
		return a.Reset(ctx)
	case "save":
		return a.Save(ctx)
	case "share":
		return a.Share(ctx)
	case "weather":
		return a.Weather(ctx)
	default:
		return a.CloseChecklist(ctx)
	}
}
