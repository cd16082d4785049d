package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/nihei9/compilekit/driver"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "test <grammar> <tokens>",
		Short: "Run the shift-reduce driver over a token list and report accept/reject",
		Long: `Each non-empty line of <tokens> is one token: "type" or "type lexeme".
When lexeme is omitted, type is used as its own lexeme. Use "-" for
<tokens> to read from stdin.`,
		Example: `  compilekit test grammar.ckit tokens.txt`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	_, _, table, err := loadAndCompile(args[0])
	if err != nil {
		return err
	}

	tokensR := os.Stdin
	if args[1] != "-" {
		f, err := os.Open(args[1])
		if err != nil {
			return fmt.Errorf("compilekit: cannot open %s: %w", args[1], err)
		}
		defer f.Close()
		tokensR = f
	}

	pairs, err := readTokenPairs(tokensR)
	if err != nil {
		return err
	}

	ok, runErr := driver.Run(table, driver.NewSliceTokenStream(pairs))
	if runErr != nil {
		pterm.Error.Println(runErr.Error())
		return runErr
	}
	if ok {
		pterm.Success.Println("accept")
		return nil
	}
	pterm.Error.Println("reject")
	return fmt.Errorf("compilekit: input rejected")
}

func readTokenPairs(r *os.File) ([][2]string, error) {
	var pairs [][2]string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch len(fields) {
		case 1:
			pairs = append(pairs, [2]string{fields[0], fields[0]})
		default:
			pairs = append(pairs, [2]string{fields[0], strings.Join(fields[1:], " ")})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return pairs, nil
}
