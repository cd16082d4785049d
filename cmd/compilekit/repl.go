package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/nihei9/compilekit/driver"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "repl <grammar>",
		Short:   "Interactively drive a grammar's LALR(1) table, one line of tokens at a time",
		Example: `  compilekit repl grammar.ckit`,
		Args:    cobra.ExactArgs(1),
		RunE:    runRepl,
	}
	rootCmd.AddCommand(cmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	_, _, table, err := loadAndCompile(args[0])
	if err != nil {
		return err
	}
	if len(table.Conflicts) > 0 {
		pterm.Warning.Printfln("%d conflicts were resolved during construction", len(table.Conflicts))
	}

	rl, err := readline.New("compilekit> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	pterm.Info.Println(`Enter one token per field, "type" or "type:lexeme", separated by spaces. Ctrl-D to quit.`)

	for {
		line, err := rl.Readline()
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		pairs, err := parseReplLine(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}

		ok, runErr := driver.Run(table, driver.NewSliceTokenStream(pairs))
		if runErr != nil {
			pterm.Error.Println(runErr.Error())
			continue
		}
		if ok {
			pterm.Success.Println("accept")
		} else {
			pterm.Error.Println("reject")
		}
	}
	pterm.Println("bye")
	return nil
}

// parseReplLine splits a REPL line into (type, lexeme) pairs. Each field
// is either a bare terminal name (lexeme defaults to the name) or
// "type:lexeme".
func parseReplLine(line string) ([][2]string, error) {
	var pairs [][2]string
	for _, field := range strings.Fields(line) {
		if idx := strings.Index(field, ":"); idx >= 0 {
			pairs = append(pairs, [2]string{field[:idx], field[idx+1:]})
			continue
		}
		pairs = append(pairs, [2]string{field, field})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("compilekit: no tokens on this line")
	}
	return pairs, nil
}
