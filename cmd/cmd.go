// Package cmd defines the command-line interface for casemap.
package cmd

import (
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(foldersCmd)
	rootCmd.AddCommand(casesCmd)
	rootCmd.AddCommand(companiesCmd)
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the folders subcommands to the parent folders command
	foldersCmd.AddCommand(foldersListCmd)
	foldersCmd.AddCommand(foldersAddCmd)
	foldersCmd.AddCommand(foldersUseCmd)
	foldersCmd.AddCommand(foldersDeleteCmd)

	// Add the cases subcommands to the parent cases command
	casesCmd.AddCommand(casesListCmd)
	casesCmd.AddCommand(casesAddCmd)
	casesCmd.AddCommand(casesShowCmd)
	casesCmd.AddCommand(casesRateCmd)
	casesCmd.AddCommand(casesMoveCmd)
	casesCmd.AddCommand(casesDeleteCmd)

	// Add the companies subcommands to the parent companies command
	companiesCmd.AddCommand(companiesListCmd)
	companiesCmd.AddCommand(companiesAddCmd)
	companiesCmd.AddCommand(companiesUseCmd)
	companiesCmd.AddCommand(companiesDeleteCmd)

	// Add the config subcommands to the parent config command
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetWeightCmd)
	configCmd.AddCommand(configSetThresholdCmd)
	configCmd.AddCommand(configSetLevelDescCmd)
	configCmd.AddCommand(configResetCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-target metadata (advice, descriptions, dates)")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("generate-base-url", contract.DefaultGenerateBaseURL, "Base URL of the OpenAI-compatible generation endpoint")
	rootCmd.PersistentFlags().String("generate-model", contract.DefaultGenerateModel, "Model name for generation requests")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of generateCmd to Viper
	generateCmd.Flags().Int("count", contract.DefaultGenerateCount, "Number of use cases to generate")
	generateCmd.Flags().Int("parallel", contract.DefaultGenerateParallel, "Number of concurrent generation requests")
	generateCmd.Flags().Int("retries", contract.DefaultGenerateRetries, "Retries per generation request")
	if err := viper.BindPFlags(generateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding generate flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
