// Command aligndiff compares two text files line by line, detects moved
// blocks and intra-line changes, and prints the result as a side-by-side
// terminal view. It is the batch-CLI counterpart to the compare package's
// host-agnostic engine, the way dm's diffmerge.go is a CLI wrapped around
// the dm package.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/pflag"

	"github.com/aligndiff/aligndiff/compare"
	"github.com/aligndiff/aligndiff/memdoc"
)

func main() {
	opts := compare.DefaultCompareOptions
	opts.CreateFlags(pflag.CommandLine)

	pflag.Int("columns", defaultRenderConfig.Columns, "Terminal width to render the side-by-side view at.")
	pflag.Int("context-lines", defaultRenderConfig.ContextLines, "Lines of MATCH context to show around a change; 0 shows everything.")
	pflag.Bool("highlight", defaultRenderConfig.Highlight, "Apply chroma syntax highlighting based on file extension.")
	pflag.String("lang", "", "Force a chroma lexer name instead of guessing from the file extension.")
	pflag.Bool("old-file-is-sub", false, "Treat the second file as the old (REMOVED) side instead of the first.")
	dumpConfig := pflag.Bool("dump-config", false, "Print the resolved configuration as TOML and exit, without comparing any files.")

	pflag.Parse()
	defer glog.Flush()

	if *dumpConfig {
		cmpOpts, rcfg, err := loadConfig(pflag.CommandLine)
		if err != nil {
			glog.Fatalf("loading configuration: %s", err)
		}
		if err := writeConfig(os.Stdout, cmpOpts, rcfg); err != nil {
			glog.Fatalf("writing configuration: %s", err)
		}
		return
	}

	if pflag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file1> <file2>\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(2)
	}

	cmpOpts, rcfg, err := loadConfig(pflag.CommandLine)
	if err != nil {
		glog.Fatalf("loading configuration: %s", err)
	}

	path1, path2 := pflag.Arg(0), pflag.Arg(1)
	pair, err := memdoc.LoadPair(path1, path2)
	if err != nil {
		glog.Fatalf("%s", err)
	}

	sink := memdoc.NewRecorder()
	result := compare.Run(context.Background(), pair, cmpOpts, sink, memdoc.PhaseLogger{})

	switch result.Code {
	case compare.ResultError:
		glog.Fatalf("comparison failed: %s", result.Err)
	case compare.ResultCancelled:
		glog.Fatalf("comparison was cancelled")
	}

	if rcfg.Lang == "" {
		rcfg.Lang = guessLang(path1)
	}
	render(os.Stdout, pair, sink, result.Alignment, rcfg)

	if result.Code == compare.ResultMismatch {
		os.Exit(1)
	}
}
