package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/internal/genai"
	"github.com/spf13/cobra"
)

// generateCmd generates use cases from free-text context.
var generateCmd = &cobra.Command{
	Use:   "generate <context...>",
	Short: "Generate, score and persist use case proposals from free text",
	Long: `Ask the configured generation endpoint to propose use cases for the
folder, detail each one with 1-5 ratings on the folder's axes, then
score and persist the results.

Candidates are detailed in parallel. Failed candidates are reported and
skipped; successful ones are applied anyway.

Requires CASEMAP_GENERATE_API_KEY in the environment (or an endpoint
that needs no key).

Examples:
  # Five proposals for the active folder
  casemap generate "Back-office automation for a regional insurer"

  # A bigger batch against a local endpoint
  CASEMAP_GENERATE_BASE_URL=http://localhost:11434/v1 \
    casemap generate --count 10 "Claims processing"`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()
		freeText := strings.Join(args, " ")
		folderFlag, _ := cmd.Flags().GetString("folder")
		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}

		orch := genai.NewOrchestrator(engine, newGenerator(), cfg.GenerateParallel)
		result, err := orch.Generate(rootCtx, folder.ID, freeText, cfg.GenerateCount)
		if err != nil {
			contract.LogFatal("Cannot generate use cases", err)
		}

		for _, uc := range result.Applied {
			fmt.Printf("Captured %q (%s)\n", uc.Name, uc.ID)
		}
		for _, failure := range result.Failures {
			contract.LogWarn(fmt.Sprintf("skipped %q", failure.Name), failure.Err)
		}
		fmt.Printf("Generated %d use cases (%d failed) in %v\n",
			len(result.Applied), len(result.Failures), time.Since(start))
	},
}

func init() {
	generateCmd.Flags().String("folder", "", "Folder id or name (defaults to the active folder)")
}
