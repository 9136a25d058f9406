// Package cmd - rules commands
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"quote-pricing/adapters/rules"
	"quote-pricing/internal/errors"
)

// rulesCmd groups rules-file operations
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect and validate rules files",
}

// rulesValidateCmd lints a rules file
var rulesValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a rules file",
	Long: `Parse a rules file and report rule definitions that would silently
misprice: unknown operators or cost types, negative amounts, optional
steps without triggers, add-ons without keywords.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := rules.Load(args[0])
		if err != nil {
			return err
		}

		issues := rules.Validate(file)
		if len(issues) == 0 {
			fmt.Printf("%s: %d services, no issues\n", args[0], len(file.Order))
			return nil
		}
		for _, issue := range issues {
			fmt.Println(issue)
		}
		return errors.Newf(errors.TypeValidation, "%d issues found", len(issues))
	},
}

// rulesListCmd lists configured services
var rulesListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List services configured in a rules file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := rules.Load(args[0])
		if err != nil {
			return err
		}
		for _, id := range file.Order {
			svc := file.Services[id]
			fmt.Printf("%-30s %d steps, %d addons, %d multipliers\n",
				id, len(svc.Rules.WorkSteps), len(svc.Rules.Addons), len(svc.Rules.Multipliers))
		}
		return nil
	},
}

func init() {
	rulesCmd.AddCommand(rulesValidateCmd)
	rulesCmd.AddCommand(rulesListCmd)
}
