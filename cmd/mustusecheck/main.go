// Command mustusecheck runs the must-use checks over module descriptions.
//
// Usage:
//
//	mustusecheck [options] <module.yaml> [more.yaml ...]
//
// Options:
//
//	--config <file>   Use specific config file
//	--no-config       Ignore config files
//	-d, --disable     Disable a diagnostic rule (repeatable)
//	-q, --quiet       Suppress output, report via exit status only
//	--version         Print version and exit
//
// Config file:
//
//	mustusecheck looks for mustuse.json or .mustuserc in the current
//	directory and parent directories. Rules disabled on the command line
//	extend the config file's disabled-rule set.
//
// Example mustuse.json:
//
//	{
//	    "disabledRules": ["discarded_must_use"]
//	}
//
// Exit status is 0 when every module is clean, 1 when any check failed,
// and 2 on usage or load errors.
package main

import (
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"codeberg.org/saruga/mustuse/internal/config"
	"codeberg.org/saruga/mustuse/pkg/api"
)

const version = "0.3.0"

type options struct {
	Config   string   `long:"config" description:"Use specific config file"`
	NoConfig bool     `long:"no-config" description:"Ignore config files"`
	Disable  []string `long:"disable" short:"d" description:"Disable a diagnostic rule"`
	Quiet    bool     `long:"quiet" short:"q" description:"Suppress output, report via exit status only"`
	Version  bool     `long:"version" description:"Print version and exit"`

	Args struct {
		Files []string `positional-arg-name:"module.yaml"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts := &options{}
	rest, err := flags.ParseArgs(opts, args)
	if err != nil {
		if flags.WroteHelp(err) {
			return 0
		}
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	opts.Args.Files = append(opts.Args.Files, rest...)

	if opts.Version {
		fmt.Printf("mustusecheck %s\n", version)
		return 0
	}
	if len(opts.Args.Files) == 0 {
		fmt.Fprintln(os.Stderr, "mustusecheck: no module files given")
		return 2
	}

	disabled, err := resolveDisabledRules(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mustusecheck: %v\n", err)
		return 2
	}

	status := 0
	for _, file := range opts.Args.Files {
		result, err := api.CheckFile(file, api.Options{DisabledRules: disabled})
		if err != nil {
			fmt.Fprintf(os.Stderr, "mustusecheck: %v\n", err)
			return 2
		}
		if !result.Valid {
			status = 1
		}
		if !opts.Quiet && result.Formatted != "" {
			fmt.Fprintf(os.Stderr, "%s:\n%s", file, result.Formatted)
		}
	}
	return status
}

// resolveDisabledRules combines config file rules with CLI rules.
func resolveDisabledRules(opts *options) ([]string, error) {
	if opts.NoConfig {
		return opts.Disable, nil
	}

	var cfg *config.Config
	var err error
	if opts.Config != "" {
		cfg, err = config.LoadFile(opts.Config)
	} else {
		wd, wdErr := os.Getwd()
		if wdErr != nil {
			return nil, wdErr
		}
		cfg, _, err = config.Load(wd)
	}
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return opts.Disable, nil
	}
	return cfg.Merge(opts.Disable), nil
}
