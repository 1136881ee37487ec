package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/internal/genai"
	"github.com/huangsam/casemap/internal/iokv"
	"github.com/huangsam/casemap/internal/outwriter"
	"github.com/huangsam/casemap/internal/repo"
	"github.com/huangsam/casemap/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// engine is the global scoring engine, built during shared setup.
var engine *core.Engine

// writer is the global output writer.
var writer = outwriter.NewOutWriter()

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "casemap",
	Short:              "Capture, score and prioritize use cases on a value-complexity matrix.",
	Long:               `Casemap keeps a portfolio of use case proposals and ranks them along weighted value and complexity axes so you know what to pursue first.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Set config file name and paths
		viper.SetConfigName(".casemap") // Name of config file (without extension)
		viper.SetConfigType("yaml")     // We'll use YAML format
		viper.AddConfigPath(".")        // Look in the current directory
		viper.AddConfigPath("$HOME")    // Look in the home directory
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("CASEMAP")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("limit", contract.DefaultResultLimit)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("store-backend", schema.SQLiteBackend)
	viper.SetDefault("store-db-connect", "")
	viper.SetDefault("generate-base-url", contract.DefaultGenerateBaseURL)
	viper.SetDefault("generate-model", contract.DefaultGenerateModel)
	viper.SetDefault("count", contract.DefaultGenerateCount)
	viper.SetDefault("parallel", contract.DefaultGenerateParallel)
	viper.SetDefault("retries", contract.DefaultGenerateRetries)
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config, runs validation and builds the engine
// over the configured store.
func sharedSetup(_ context.Context, _ *cobra.Command, _ []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Run all validation and complex parsing.
	// This function populates the global 'cfg' from 'input'.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}

	// 4. Initialize persistence layer with validated config.
	connStr := cfg.StoreDBConnect
	if cfg.StoreBackend == schema.SQLiteBackend && connStr == "" {
		connStr = iokv.GetDBFilePath()
	}
	if err := iokv.InitStore(cfg.StoreBackend, connStr); err != nil {
		return fmt.Errorf("failed to initialize persistence: %w", err)
	}

	// 5. Build the repository and engine over the store. The repository
	// seeds the default folder on first run.
	r, err := repo.New(iokv.GetManager().GetStore())
	if err != nil {
		return fmt.Errorf("failed to open repository: %w", err)
	}
	engine = core.NewEngine(r)

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	// Handle config file
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".casemap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// newGenerator builds the generation client from the validated config.
func newGenerator() contract.Generator {
	retry := genai.DefaultRetryConfig()
	retry.MaxAttempts = cfg.GenerateRetries + 1
	return genai.NewClient(cfg.GenerateBaseURL, cfg.GenerateModel, cfg.GenerateAPIKey,
		genai.WithRetryConfig(retry))
}

// resolveFolder maps an optional --folder flag value to a concrete
// folder, falling back to the active folder.
func resolveFolder(folderFlag string) (*schema.Folder, error) {
	id := folderFlag
	if id == "" {
		activeID, err := engine.Repo().ActiveFolderID()
		if err != nil {
			return nil, err
		}
		id = activeID
	}
	folder, err := engine.Repo().GetFolder(id)
	if err != nil {
		// Allow addressing folders by name as a convenience.
		folders, listErr := engine.Repo().ListFolders()
		if listErr != nil {
			return nil, err
		}
		for i := range folders {
			if folders[i].Name == folderFlag {
				return &folders[i], nil
			}
		}
		return nil, err
	}
	return folder, nil
}

// parseAxisKind maps the --kind flag to an axis kind.
func parseAxisKind(s string) (schema.AxisKind, error) {
	switch strings.ToLower(s) {
	case "value":
		return schema.ValueKind, nil
	case "complexity":
		return schema.ComplexityKind, nil
	default:
		return schema.ValueKind, fmt.Errorf("kind must be value or complexity, got %q", s)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// CloseStore releases the persistence layer at exit.
func CloseStore() {
	iokv.CloseStore()
}
