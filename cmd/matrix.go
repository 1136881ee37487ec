package cmd

import (
	"time"

	"github.com/huangsam/casemap/internal/contract"
	"github.com/spf13/cobra"
)

// matrixCmd classifies a folder into the 5x5 grid.
var matrixCmd = &cobra.Command{
	Use:   "matrix",
	Short: "Classify the folder's use cases into the 5x5 prioritization grid",
	Long: `Bucket the folder's scored use cases into the 5x5 value-by-complexity
matrix and render it with advisory labels.

Rows run from 5-star value at the top down to 1 star; columns run from
1 X complexity on the left up to 5 X. The top-left corner is the quick
win zone, the bottom-right corner the drop zone. Use cases missing
either total are excluded and reported separately.

Examples:
  # Classify the active folder
  casemap matrix

  # Include case names in each cell
  casemap matrix --detail

  # Machine-readable grid
  casemap matrix --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		start := time.Now()
		folderFlag, _ := cmd.Flags().GetString("folder")
		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		m, err := engine.Classify(folder.ID)
		if err != nil {
			contract.LogFatal("Cannot classify folder", err)
		}
		if err := writer.WriteMatrix(m, cfg, time.Since(start)); err != nil {
			contract.LogFatal("Cannot write matrix", err)
		}
	},
}

func init() {
	matrixCmd.Flags().String("folder", "", "Folder id or name (defaults to the active folder)")
}
