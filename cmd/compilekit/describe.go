package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "describe",
		Short:   "Print a human-readable summary of a grammar's LALR(1) table",
		Example: `  compilekit describe grammar.ckit`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runDescribe,
	}
	rootCmd.AddCommand(cmd)
}

func runDescribe(cmd *cobra.Command, args []string) error {
	specPath := "stdin"
	if len(args) > 0 {
		specPath = args[0]
	}

	g, rules, table, err := loadAndCompile(specPath)
	if err != nil {
		return err
	}

	pterm.DefaultSection.Println("Grammar")
	tableData := pterm.TableData{{"#", "production"}}
	for _, p := range g.Productions() {
		if g.IsAugmentedStart(p) {
			continue
		}
		tableData = append(tableData, []string{fmt.Sprint(p.ID), p.String()})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(tableData).Render(); err != nil {
		return err
	}

	if len(rules) > 0 {
		pterm.DefaultSection.Println("Lexical rules")
		lexData := pterm.TableData{{"type", "pattern", "priority", "skip"}}
		for _, r := range rules {
			lexData = append(lexData, []string{string(r.Type), r.Pattern, fmt.Sprint(r.Priority), fmt.Sprint(r.Skip)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(lexData).Render(); err != nil {
			return err
		}
	}

	pterm.DefaultSection.Println("Table")
	pterm.Printfln("initial state: %d", table.InitialState)
	pterm.Printfln("states with actions: %d", len(table.Action))

	if len(table.Conflicts) == 0 {
		pterm.Success.Println("no conflicts")
		return nil
	}
	pterm.Warning.Printfln("%d conflicts", len(table.Conflicts))
	for _, c := range table.Conflicts {
		pterm.Println("  " + c)
	}
	return nil
}
