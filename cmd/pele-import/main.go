// Command pele-import converts an FBref export into a canonical CSV.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/okian/pele/internal/adapters/ingest"
)

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "pele-import:", err)
		}
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("pele-import", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		format = fs.String("format", ingest.FormatFBref, "input format: fbref (match logs) or fbref-season (season aggregates)")
		input  = fs.String("input", "", `input CSV file, or "-" for stdin`)
		output = fs.String("output", "", "output CSV file (default stdout)")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *input == "" {
		fs.Usage()
		return fmt.Errorf("%w: -input is required", errUsage)
	}
	if *format != ingest.FormatFBref && *format != ingest.FormatFBrefSeason {
		return fmt.Errorf("%w: unknown -format %q", errUsage, *format)
	}

	in := stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	t, err := ingest.Read(*format, in)
	if err != nil {
		return err
	}

	out := stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}
	if err := ingest.WriteCanonical(out, t); err != nil {
		return err
	}
	fmt.Fprintf(stderr, "pele-import: %d rows\n", len(t.Rows))
	return nil
}
