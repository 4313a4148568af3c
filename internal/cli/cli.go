// Package cli implements the non-interactive subcommands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sadopc/streakr/internal/export"
	"github.com/sadopc/streakr/internal/streak"
	"github.com/sadopc/streakr/internal/tracker"
)

var ErrUnknownCommand = errors.New("unknown command")

const usage = `usage: streakr [command]

Without a command the interactive UI starts.

commands:
  add <YYYY-MM-DD>            log a date
  rm <n>                      remove the n-th date as shown by list
  list                        show logged dates, oldest first
  stats                       show the streak and trailing-year count
  export <csv|json> [path]    export dates
  help                        show this message
`

// IsCommand reports whether name is a subcommand handled by Run.
func IsCommand(name string) bool {
	switch name {
	case "add", "rm", "list", "stats", "export", "help", "-h", "--help":
		return true
	}
	return false
}

// Run executes args[0] against t, writing human readable output to out.
// exportDir is used when export is given no explicit path.
func Run(args []string, t *tracker.Tracker, exportDir string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: none given", ErrUnknownCommand)
	}

	switch args[0] {
	case "add":
		if len(args) != 2 {
			return errors.New("usage: streakr add <YYYY-MM-DD>")
		}
		stats, err := t.AddText(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "added %s\n", args[1])
		printStats(out, stats)

	case "rm":
		if len(args) != 2 {
			return errors.New("usage: streakr rm <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[1], err)
		}
		stats, err := t.RemoveAt(n - 1)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "removed #%d\n", n)
		printStats(out, stats)

	case "list":
		ds := t.Dates()
		if len(ds) == 0 {
			fmt.Fprintln(out, "no dates logged")
			return nil
		}
		for i, d := range ds {
			fmt.Fprintf(out, "%3d  %s\n", i+1, d)
		}

	case "stats":
		printStats(out, t.Stats())

	case "export":
		if len(args) < 2 || len(args) > 3 {
			return errors.New("usage: streakr export <csv|json> [path]")
		}
		format := args[1]
		path := export.DefaultPath(exportDir, format, time.Now())
		if len(args) == 3 {
			path = args[2]
		}
		var err error
		switch format {
		case export.FormatCSV:
			err = export.ToCSV(t.Dates(), path)
		case export.FormatJSON:
			err = export.ToJSON(t.Dates(), t.Stats(), path)
		default:
			return fmt.Errorf("unknown export format %q", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "exported to %s\n", path)

	case "help", "-h", "--help":
		fmt.Fprint(out, usage)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	return nil
}

func printStats(out io.Writer, s streak.Stats) {
	fmt.Fprintf(out, "Consecutive months: %d\n", s.ConsecutiveMonths)
	fmt.Fprintf(out, "Events last year:   %d\n", s.EventsLastYear)
}
