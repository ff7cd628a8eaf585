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
	Publish(ctx context.Context, path string) error
	List(ctx context.Context) error
	ShowSettings(ctx context.Context) error
	Set(ctx context.Context, field, value string) error
}

// runREPL reads one command per line from scanner and dispatches it to a.
// The loop exits on scanner EOF or when the user types "exit" or "quit".
//
// Command errors are printed and the loop goes on; a failed command never
// ends the session.
func runREPL(ctx context.Context, a execIface, scanner *bufio.Scanner) {
	for {
		printlnFn("docpublish> ")
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn("Available commands: publish <path>, (l)ist, settings, set <field> [value], exit")
			printlnFn("'set apiSecret' without a value prompts for the secret; with piped input it is read from the next line")

		case "publish", "p":
			// Paths may contain spaces.
			err = a.Publish(ctx, strings.Join(args, " "))

		case "list", "l":
			err = a.List(ctx)

		case "settings":
			err = a.ShowSettings(ctx)

		case "set":
			if len(args) == 0 {
				printlnFn("Usage: set <url|apiKey|apiSecret> [value]")
				continue
			}
			err = a.Set(ctx, args[0], strings.Join(args[1:], " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
