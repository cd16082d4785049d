package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"

	verr "github.com/nihei9/compilekit/error"
	"github.com/nihei9/compilekit/grammar"
	"github.com/nihei9/compilekit/lexer"
	"github.com/nihei9/compilekit/specfmt"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile",
		Short:   "Compile a grammar into a LALR(1) ACTION/GOTO table",
		Example: `  compilekit compile grammar.ckit -o table.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	specPath := "stdin"
	if len(args) > 0 {
		specPath = args[0]
	}
	defer func() {
		if specErr, ok := retErr.(*verr.SpecError); ok {
			specErr.FilePath = specPath
			specErr.SourceName = specPath
		}
	}()

	g, _, table, err := loadAndCompile(specPath)
	if err != nil {
		return err
	}

	b, err := marshalTable(table)
	if err != nil {
		return fmt.Errorf("compilekit: cannot marshal table: %w", err)
	}

	if len(table.Conflicts) > 0 {
		fmt.Fprintf(os.Stderr, "%d conflicts resolved for grammar starting at %v\n", len(table.Conflicts), g.Start())
	}

	if *compileFlags.output == "" {
		fmt.Fprintln(os.Stdout, string(b))
		return nil
	}
	return ioutil.WriteFile(*compileFlags.output, append(b, '\n'), 0644)
}

// loadAndCompile loads specPath (or stdin, when it equals "stdin") with
// specfmt, prints Analyze's findings as warnings, and runs the
// FIRST -> LR(1) -> LALR(1) -> table construction pipeline.
func loadAndCompile(specPath string) (*grammar.Grammar, []*lexer.Rule, *grammar.Table, error) {
	var r io.Reader
	if specPath == "stdin" {
		r = os.Stdin
	} else {
		f, err := os.Open(specPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("compilekit: cannot open %s: %w", specPath, err)
		}
		defer f.Close()
		r = f
	}

	g, rules, err := specfmt.Load(r)
	if err != nil {
		return nil, nil, nil, err
	}

	for _, semErr := range grammar.Analyze(g) {
		fmt.Fprintf(os.Stderr, "compilekit: warning: %v\n", semErr)
	}

	lr1, err := grammar.BuildLR1(g)
	if err != nil {
		return nil, nil, nil, err
	}
	lalr, err := grammar.MergeLALR1(g, lr1)
	if err != nil {
		return nil, nil, nil, err
	}
	table, err := grammar.BuildTable(g, lalr)
	if err != nil {
		return nil, nil, nil, err
	}
	return g, rules, table, nil
}
