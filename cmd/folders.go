package cmd

import (
	"fmt"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/spf13/cobra"
)

// foldersCmd groups folder management.
var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "Manage use case folders and the active folder",
	Long: `Manage the folders that partition your use case portfolio.

Every use case lives in exactly one folder, and every folder carries
its own scoring configuration (axes, weights, thresholds). Scores in
one folder never affect another.

Subcommands:
  list   - Show all folders and the active one
  add    - Create a new folder with default scoring config
  use    - Switch the active folder
  delete - Remove a folder and all of its use cases

Examples:
  # See all folders
  casemap folders list

  # Start a separate evaluation for a client
  casemap folders add "Acme pilot" --description "Q4 pilot scoping"
  casemap folders use "Acme pilot"`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// foldersListCmd lists all folders.
var foldersListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all folders and mark the active one",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		folders, err := engine.Repo().ListFolders()
		if err != nil {
			contract.LogFatal("Cannot list folders", err)
		}
		activeID, err := engine.Repo().ActiveFolderID()
		if err != nil {
			contract.LogFatal("Cannot resolve active folder", err)
		}
		if err := writer.WriteFolders(folders, activeID, cfg); err != nil {
			contract.LogFatal("Cannot write folder list", err)
		}
	},
}

// foldersAddCmd creates a folder with the default scoring config.
var foldersAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Create a new folder with the default scoring config",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		description, _ := cmd.Flags().GetString("description")
		companyID, _ := cmd.Flags().GetString("company")

		folder := &schema.Folder{
			Name:         args[0],
			Description:  description,
			CompanyID:    companyID,
			MatrixConfig: schema.DefaultMatrixConfig(),
		}
		if err := engine.Repo().SaveFolder(folder); err != nil {
			contract.LogFatal("Cannot create folder", err)
		}
		fmt.Printf("Created folder %q (%s)\n", folder.Name, folder.ID)
	},
}

// foldersUseCmd switches the active folder.
var foldersUseCmd = &cobra.Command{
	Use:     "use <folder>",
	Short:   "Switch the active folder by id or name",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		folder, err := resolveFolder(args[0])
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		if err := engine.Repo().SetActiveFolderID(folder.ID); err != nil {
			contract.LogFatal("Cannot switch folder", err)
		}
		fmt.Printf("Active folder is now %q\n", folder.Name)
	},
}

// foldersDeleteCmd removes a folder and its use cases.
var foldersDeleteCmd = &cobra.Command{
	Use:   "delete <folder>",
	Short: "Remove a folder and all of its use cases",
	Long: `Delete a folder by id or name. All use cases in the folder are
removed with it. The last remaining folder cannot be deleted; if the
deleted folder was active, another folder becomes active.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		folder, err := resolveFolder(args[0])
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		if err := engine.Repo().DeleteFolder(folder.ID); err != nil {
			contract.LogFatal("Cannot delete folder", err)
		}
		fmt.Printf("Deleted folder %q and its use cases\n", folder.Name)
	},
}

func init() {
	foldersAddCmd.Flags().String("description", "", "Folder description")
	foldersAddCmd.Flags().String("company", "", "Company id the folder belongs to")
}
