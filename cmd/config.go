package cmd

import (
	"fmt"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"github.com/spf13/cobra"
)

// configCmd groups scoring configuration management.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and tune a folder's scoring configuration",
	Long: `Inspect and mutate a folder's axes, weights, thresholds and level
descriptions. Every mutation that affects scoring triggers a rescore of
that folder's use cases; folders are otherwise independent.

Subcommands:
  show           - Print axes and threshold tables
  set-weight     - Change one axis weight
  set-threshold  - Change one level's threshold or points
  set-level-desc - Change one axis level description (display only)
  reset          - Restore the default scoring config

Examples:
  # Double the weight of sponsorship
  casemap config set-weight --kind value --axis "Sponsorship" --weight 3

  # Raise the bar for value level 3
  casemap config set-threshold --kind value --level 3 --threshold 1200`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// configShowCmd prints the folder's scoring config.
var configShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the folder's axes and threshold tables",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		folderFlag, _ := cmd.Flags().GetString("folder")
		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		// Classify first so the per-level case counts are fresh.
		m, err := engine.Classify(folder.ID)
		if err != nil {
			contract.LogFatal("Cannot derive level counts", err)
		}
		core.ApplyLevelCounts(folder.MatrixConfig.ValueThresholds, m.ValueCounts)
		core.ApplyLevelCounts(folder.MatrixConfig.ComplexityThresholds, m.ComplexityCounts)
		if err := writer.WriteMatrixConfig(folder, cfg); err != nil {
			contract.LogFatal("Cannot write scoring config", err)
		}
	},
}

// configSetWeightCmd changes one axis weight.
var configSetWeightCmd = &cobra.Command{
	Use:     "set-weight",
	Short:   "Change one axis weight and rescore the folder",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		folderFlag, _ := cmd.Flags().GetString("folder")
		kindStr, _ := cmd.Flags().GetString("kind")
		axisName, _ := cmd.Flags().GetString("axis")
		weight, _ := cmd.Flags().GetFloat64("weight")

		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		kind, err := parseAxisKind(kindStr)
		if err != nil {
			contract.LogFatal("Cannot update weight", err)
		}
		if err := engine.UpdateAxisWeight(folder.ID, kind, axisName, weight); err != nil {
			contract.LogFatal("Cannot update weight", err)
		}
		fmt.Printf("Set %s axis %q weight to %g and rescored folder %q\n", kindStr, axisName, weight, folder.Name)
	},
}

// configSetThresholdCmd changes one level's threshold entry.
var configSetThresholdCmd = &cobra.Command{
	Use:   "set-threshold",
	Short: "Change one level's threshold or points and rescore the folder",
	Long: `Update the threshold or rating points of one level on one dimension.
Thresholds must remain strictly increasing across levels 1-5; invalid
updates are rejected before anything is persisted.`,
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		folderFlag, _ := cmd.Flags().GetString("folder")
		kindStr, _ := cmd.Flags().GetString("kind")
		level, _ := cmd.Flags().GetInt("level")
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		points, _ := cmd.Flags().GetFloat64("points")

		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		kind, err := parseAxisKind(kindStr)
		if err != nil {
			contract.LogFatal("Cannot update threshold", err)
		}

		// Start from the current entry so unset flags leave values alone.
		var current schema.LevelThreshold
		found := false
		for _, t := range folder.MatrixConfig.Thresholds(kind) {
			if t.Level == level {
				current = t
				found = true
				break
			}
		}
		if !found {
			contract.LogFatal("Cannot update threshold", fmt.Errorf("level %d has no threshold entry", level))
		}
		if cmd.Flags().Changed("threshold") {
			current.Threshold = threshold
		}
		if cmd.Flags().Changed("points") {
			current.Points = points
		}

		updates := []schema.LevelThreshold{current}
		var valueUpdates, complexityUpdates []schema.LevelThreshold
		if kind == schema.ValueKind {
			valueUpdates = updates
		} else {
			complexityUpdates = updates
		}
		if err := engine.UpdateThresholds(folder.ID, valueUpdates, complexityUpdates); err != nil {
			contract.LogFatal("Cannot update threshold", err)
		}
		fmt.Printf("Updated %s level %d and rescored folder %q\n", kindStr, level, folder.Name)
	},
}

// configSetLevelDescCmd changes one axis level description.
var configSetLevelDescCmd = &cobra.Command{
	Use:     "set-level-desc",
	Short:   "Change one axis level description (no rescore)",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		folderFlag, _ := cmd.Flags().GetString("folder")
		kindStr, _ := cmd.Flags().GetString("kind")
		axisName, _ := cmd.Flags().GetString("axis")
		level, _ := cmd.Flags().GetInt("level")
		text, _ := cmd.Flags().GetString("text")

		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		kind, err := parseAxisKind(kindStr)
		if err != nil {
			contract.LogFatal("Cannot update level description", err)
		}
		if err := engine.UpdateLevelDescription(folder.ID, kind, axisName, level, text); err != nil {
			contract.LogFatal("Cannot update level description", err)
		}
		fmt.Printf("Updated %s axis %q level %d description\n", kindStr, axisName, level)
	},
}

// configResetCmd restores the default scoring config.
var configResetCmd = &cobra.Command{
	Use:     "reset",
	Short:   "Restore the default scoring config and rescore the folder",
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, _ []string) {
		folderFlag, _ := cmd.Flags().GetString("folder")
		folder, err := resolveFolder(folderFlag)
		if err != nil {
			contract.LogFatal("Cannot resolve folder", err)
		}
		if err := engine.UpdateMatrixConfig(folder.ID, schema.DefaultMatrixConfig()); err != nil {
			contract.LogFatal("Cannot reset scoring config", err)
		}
		fmt.Printf("Restored default scoring config for folder %q\n", folder.Name)
	},
}

func init() {
	for _, c := range []*cobra.Command{configShowCmd, configSetWeightCmd, configSetThresholdCmd, configSetLevelDescCmd, configResetCmd} {
		c.Flags().String("folder", "", "Folder id or name (defaults to the active folder)")
	}

	configSetWeightCmd.Flags().String("kind", "value", "Dimension: value or complexity")
	configSetWeightCmd.Flags().String("axis", "", "Axis name")
	configSetWeightCmd.Flags().Float64("weight", 0, "New positive weight")
	_ = configSetWeightCmd.MarkFlagRequired("axis")
	_ = configSetWeightCmd.MarkFlagRequired("weight")

	configSetThresholdCmd.Flags().String("kind", "value", "Dimension: value or complexity")
	configSetThresholdCmd.Flags().Int("level", 0, "Level to update (1-5)")
	configSetThresholdCmd.Flags().Float64("threshold", 0, "New threshold for the level")
	configSetThresholdCmd.Flags().Float64("points", 0, "New rating points for the level")
	_ = configSetThresholdCmd.MarkFlagRequired("level")

	configSetLevelDescCmd.Flags().String("kind", "value", "Dimension: value or complexity")
	configSetLevelDescCmd.Flags().String("axis", "", "Axis name")
	configSetLevelDescCmd.Flags().Int("level", 0, "Level to describe (1-5)")
	configSetLevelDescCmd.Flags().String("text", "", "New description text")
	_ = configSetLevelDescCmd.MarkFlagRequired("axis")
	_ = configSetLevelDescCmd.MarkFlagRequired("level")
	_ = configSetLevelDescCmd.MarkFlagRequired("text")
}
