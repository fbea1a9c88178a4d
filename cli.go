package loglens

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/loglens/loglens/config"
	"github.com/loglens/loglens/ui"
)

var version = "v0.1.0"

// CLI ties the pieces together for the loglens binary: option
// parsing, settings file loading, buffer loading, and then either the
// interactive viewer or a plain dump of the surviving lines.
type CLI struct{}

// Run executes the command line given in args (excluding the program
// name).
func (cli *CLI) Run(args []string) error {
	var options CLIOptions
	rest, err := options.parse(args)
	if err != nil {
		return err
	}

	if options.OptHelp {
		os.Stdout.Write(options.help())
		return nil
	}
	if options.OptVersion {
		fmt.Fprintf(os.Stdout, "loglens version %s\n", version)
		return nil
	}

	ll := New()

	rcfile := options.OptRcfile
	if rcfile == "" {
		rcfile, err = config.LocateRCFile()
		if err != nil {
			return err
		}
	}
	if rcfile != "" {
		if err := ll.Config().ReadFilename(rcfile); err != nil {
			return errors.Wrap(err, "failed to read settings file")
		}
	}
	options.apply(ll.Config())

	switch len(rest) {
	case 0:
		// e.g. "dmesg | loglens"
		if err := ll.Buffer().ReadFrom(os.Stdin); err != nil {
			return errors.Wrap(err, "failed to read standard input")
		}
	case 1:
		if err := ll.Load(rest[0]); err != nil {
			return err
		}
	default:
		os.Stderr.Write(options.help())
		return errors.New("expected at most one input file")
	}

	res, err := ll.Apply(context.Background())
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}

	if options.OptDump {
		return cli.dump(os.Stdout, res)
	}

	v := ui.NewViewer(res.Lines, res.LineNumbers, res.Points, ll.Config().Style.LineNumber.Tcell())
	return v.Run()
}

// dump prints each surviving line prefixed with its original line
// number in the loaded file.
func (cli *CLI) dump(w io.Writer, res *Result) error {
	for i, l := range res.Lines {
		orig := res.Offsets.OriginalLine(i + 1)
		if _, err := fmt.Fprintf(w, "%d: %s\n", orig, l.Text()); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	}
	return nil
}
