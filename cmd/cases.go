package cmd

import (
	"fmt"
	"time"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/spf13/cobra"
)

// casesCmd groups use case management.
var casesCmd = &cobra.Command{
	Use:   "cases",
	Short: "Manage use cases in the active folder",
	Long: `Capture, rate and manage the use cases in a folder.

Every use case is rated 1-5 on the folder's value and complexity axes.
Totals are derived from those ratings and the folder's weights, and
recomputed automatically whenever the folder's config changes.

Subcommands:
  list   - Show the folder's use cases with scores and levels
  add    - Capture a new use case
  show   - Show one use case in full
  rate   - Rate a use case on one axis
  move   - Move a use case to another folder
  delete - Remove a use case

Examples:
  # Capture and rate a proposal
  casemap cases add "Invoice extraction" --description "OCR the PDFs"
  casemap cases rate <case-id> --kind value --axis "Business Value" --rating 4

  # Review the portfolio
  casemap cases list --detail`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// casesListCmd lists the use cases of one folder.
var casesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show the folder's use cases with derived scores and levels",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		start := time.Now()
		folderFlag, _ := cmd.Flags().GetString("folder")
		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		cases, err := engine.Repo().ListCases(folder.ID)
		if err != nil {
			contract.LogFatal("Cannot list use cases", err)
		}
		if cfg.ResultLimit > 0 && len(cases) > cfg.ResultLimit {
			cases = cases[:cfg.ResultLimit]
		}
		if err := writer.WriteCases(cases, folder, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write use case list", err)
		}
	},
}

// casesAddCmd captures a new use case.
var casesAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Capture a new use case in the folder",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		folderFlag, _ := cmd.Flags().GetString("folder")
		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}

		description, _ := cmd.Flags().GetString("description")
		companyID, _ := cmd.Flags().GetString("company")
		processes, _ := cmd.Flags().GetStringSlice("process")

		uc := &schema.UseCase{
			Name:               args[0],
			Description:        description,
			CompanyID:          companyID,
			BusinessProcessIDs: processes,
		}
		saved, err := engine.ScoreAndAttach(uc, folder.ID)
		if err != nil {
			contract.LogFatal("Cannot add use case", err)
		}
		fmt.Printf("Captured use case %q (%s) in folder %q\n", saved.Name, saved.ID, folder.Name)
	},
}

// casesShowCmd prints one use case in full.
var casesShowCmd = &cobra.Command{
	Use:     "show <case-id>",
	Short:   "Show one use case with its ratings and advice",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		uc, err := engine.Repo().GetCase(args[0])
		if err != nil {
			contract.LogFatal("Cannot resolve use case", err)
		}
		folder, err := engine.Repo().GetFolder(uc.FolderID)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		if err := writer.WriteCase(uc, folder, cfg); err != nil {
			contract.LogFatal("Cannot write use case", err)
		}
	},
}

// casesRateCmd rates a use case on one axis.
var casesRateCmd = &cobra.Command{
	Use:   "rate <case-id>",
	Short: "Rate a use case 1-5 on one axis",
	Long: `Set the 1-5 rating of a use case on one of its folder's axes.
The axis scale description is snapshot onto the rating, and the case's
totals are recomputed immediately.

Examples:
  casemap cases rate <case-id> --kind value --axis "Sponsorship" --rating 3
  casemap cases rate <case-id> --kind complexity --axis "Technical Effort" --rating 5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		kindStr, _ := cmd.Flags().GetString("kind")
		axisName, _ := cmd.Flags().GetString("axis")
		rating, _ := cmd.Flags().GetInt("rating")

		kind, err := parseAxisKind(kindStr)
		if err != nil {
			contract.LogFatal("Cannot rate use case", err)
		}
		uc, err := engine.RateCase(args[0], kind, axisName, rating)
		if err != nil {
			contract.LogFatal("Cannot rate use case", err)
		}
		fmt.Printf("Rated %q: %s %d on %q\n", uc.Name, kindStr, rating, axisName)
		if uc.Scored() {
			fmt.Printf("Totals: value %.1f, complexity %.1f\n", *uc.TotalValueScore, *uc.TotalComplexityScore)
		}
	},
}

// casesMoveCmd moves a use case to another folder.
var casesMoveCmd = &cobra.Command{
	Use:   "move <case-id> <folder>",
	Short: "Move a use case to another folder and rescore it there",
	Args:  cobra.ExactArgs(2),

	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		uc, err := engine.Repo().GetCase(args[0])
		if err != nil {
			contract.LogFatal("Cannot resolve use case", err)
		}
		folder, err := resolveFolder(args[1])
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		// Reattach scores the case against the target folder's config.
		if _, err := engine.ScoreAndAttach(uc, folder.ID); err != nil {
			contract.LogFatal("Cannot move use case", err)
		}
		fmt.Printf("Moved %q to folder %q\n", uc.Name, folder.Name)
	},
}

// casesDeleteCmd removes a use case.
var casesDeleteCmd = &cobra.Command{
	Use:     "delete <case-id>",
	Short:   "Remove a use case",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.Repo().DeleteCase(args[0]); err != nil {
			contract.LogFatal("Cannot delete use case", err)
		}
		fmt.Printf("Deleted use case %s\n", args[0])
	},
}

func init() {
	casesListCmd.Flags().String("folder", "", "Folder id or name (defaults to the active folder)")

	casesAddCmd.Flags().String("folder", "", "Folder id or name (defaults to the active folder)")
	casesAddCmd.Flags().String("description", "", "Use case description")
	casesAddCmd.Flags().String("company", "", "Company id the use case targets")
	casesAddCmd.Flags().StringSlice("process", nil, "Business process ids the use case touches")

	casesRateCmd.Flags().String("kind", "value", "Dimension to rate on: value or complexity")
	casesRateCmd.Flags().String("axis", "", "Axis name to rate")
	casesRateCmd.Flags().Int("rating", 0, "Rating from 1 to 5")
	_ = casesRateCmd.MarkFlagRequired("axis")
	_ = casesRateCmd.MarkFlagRequired("rating")
}
