package cmd

import (
	"fmt"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/spf13/cobra"
)

// companiesCmd groups company profile management.
var companiesCmd = &cobra.Command{
	Use:   "companies",
	Short: "Manage company profiles and the active company",
	Long: `Manage the company profiles that give generation and scoring
their business context.

Companies are independent of folders: folders and use cases reference
them by id, and deleting a company never deletes anything else.

Subcommands:
  list   - Show all companies and the active one
  add    - Create a company profile
  use    - Switch the active company
  delete - Remove a company profile

Examples:
  casemap companies add "Acme" --industry "Manufacturing"
  casemap companies use <company-id>`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// companiesListCmd lists all companies.
var companiesListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Show all companies and mark the active one",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		companies, err := engine.Repo().ListCompanies()
		if err != nil {
			contract.LogFatal("Cannot list companies", err)
		}
		activeID, err := engine.Repo().ActiveCompanyID()
		if err != nil {
			contract.LogFatal("Cannot resolve active company", err)
		}
		if err := writer.WriteCompanies(companies, activeID, cfg); err != nil {
			contract.LogFatal("Cannot write company list", err)
		}
	},
}

// companiesAddCmd creates a company profile.
var companiesAddCmd = &cobra.Command{
	Use:     "add <name>",
	Short:   "Create a company profile",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		industry, _ := cmd.Flags().GetString("industry")
		description, _ := cmd.Flags().GetString("description")

		company := &schema.Company{
			Name:        args[0],
			Industry:    industry,
			Description: description,
		}
		if err := engine.Repo().SaveCompany(company); err != nil {
			contract.LogFatal("Cannot create company", err)
		}
		fmt.Printf("Created company %q (%s)\n", company.Name, company.ID)
	},
}

// companiesUseCmd switches the active company.
var companiesUseCmd = &cobra.Command{
	Use:     "use <company-id>",
	Short:   "Switch the active company",
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		company, err := engine.Repo().GetCompany(args[0])
		if err != nil {
			contract.LogFatal("Cannot resolve company", err)
		}
		if err := engine.Repo().SetActiveCompanyID(company.ID); err != nil {
			contract.LogFatal("Cannot switch company", err)
		}
		fmt.Printf("Active company is now %q\n", company.Name)
	},
}

// companiesDeleteCmd removes a company profile.
var companiesDeleteCmd = &cobra.Command{
	Use:   "delete <company-id>",
	Short: "Remove a company profile",
	Long: `Delete a company profile. Folders and use cases that referenced it
keep their reference; only the active-company pointer is cleared when it
pointed at the deleted company.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := engine.Repo().DeleteCompany(args[0]); err != nil {
			contract.LogFatal("Cannot delete company", err)
		}
		fmt.Printf("Deleted company %s\n", args[0])
	},
}

func init() {
	companiesAddCmd.Flags().String("industry", "", "Company industry")
	companiesAddCmd.Flags().String("description", "", "Company description")
}
