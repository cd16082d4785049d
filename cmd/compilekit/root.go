package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "compilekit",
	Short: "Build regex/lexer/LALR(1) automata from a grammar and drive them",
	Long: `compilekit turns a grammar into a LALR(1) ACTION/GOTO table and
drives it against token lists, either as a one-shot command or an
interactive REPL.

Lexical rules in the spec are compiled to NFAs and listed by describe;
no command builds or runs a token DFA over input text.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}
