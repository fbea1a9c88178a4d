package loglens

import (
	"bytes"
	"fmt"
	"os"
	"reflect"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"

	"github.com/loglens/loglens/config"
)

// CLIOptions is the complete set of command line options understood by
// the loglens binary.
type CLIOptions struct {
	OptHelp      bool   `short:"h" long:"help" description:"show this help message and exit"`
	OptRcfile    string `long:"rcfile" description:"path to the settings file"`
	OptFilter    string `long:"filter" description:"initial filter term"`
	OptNegate    bool   `long:"negate" description:"keep the lines the filter does NOT match"`
	OptExtended  bool   `long:"extended" description:"allow && or || connectives in the filter term"`
	OptSearch    string `long:"search" description:"initial search term"`
	OptFormat    string `long:"format" description:"structural coloring pattern (regular expression)"`
	OptMatchCase bool   `long:"match-case" description:"match filter and search terms case sensitively"`
	OptWholeWord bool   `long:"whole-word" description:"match filter and search terms on word boundaries only"`
	OptDump      bool   `long:"dump" description:"print the surviving lines to stdout and exit"`
	OptVersion   bool   `long:"version" description:"print the version and exit"`
}

func (options *CLIOptions) parse(s []string) ([]string, error) {
	p := flags.NewParser(options, flags.PrintErrors)
	args, err := p.ParseArgs(s)
	if err != nil {
		os.Stderr.Write(options.help())
		return nil, errors.Wrap(err, "invalid command line options")
	}

	return args, nil
}

func (options CLIOptions) help() []byte {
	buf := bytes.Buffer{}

	fmt.Fprintf(&buf, `
Usage: loglens [options] [FILE]

Options:
`)

	t := reflect.TypeOf(options)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag

		var o string
		if s := tag.Get("short"); s != "" {
			o = fmt.Sprintf("-%s, --%s", tag.Get("short"), tag.Get("long"))
		} else {
			o = fmt.Sprintf("--%s", tag.Get("long"))
		}

		fmt.Fprintf(
			&buf,
			"  %-21s %s\n",
			o,
			tag.Get("description"),
		)
	}

	return buf.Bytes()
}

// apply merges the command line overrides into the configuration read
// from the settings file.
func (options CLIOptions) apply(cfg *config.Config) {
	if options.OptFilter != "" {
		cfg.Filter.Term = options.OptFilter
	}
	if options.OptNegate {
		cfg.Filter.Negate = true
	}
	if options.OptExtended {
		cfg.Filter.Extended = true
	}
	if options.OptSearch != "" {
		cfg.Search.Term = options.OptSearch
	}
	if options.OptFormat != "" {
		cfg.Format.Pattern = options.OptFormat
	}
	if options.OptMatchCase {
		cfg.Filter.MatchCase = true
		cfg.Search.MatchCase = true
	}
	if options.OptWholeWord {
		cfg.Filter.WholeWord = true
		cfg.Search.WholeWord = true
	}
}
