// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
	"github.com/huangsam/casemap/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteCases prints use-case listings using the configured output format.
func (ow *OutWriter) WriteCases(cases []schema.UseCase, folder *schema.Folder, cfg *contract.Config, duration time.Duration) error {
	return PrintCaseResults(cases, folder, cfg, duration)
}

// WriteCase prints one use case in full.
func (ow *OutWriter) WriteCase(uc *schema.UseCase, folder *schema.Folder, cfg *contract.Config) error {
	return PrintCaseDetail(uc, folder, cfg)
}

// WriteMatrix prints the classified 5x5 grid using the configured output format.
func (ow *OutWriter) WriteMatrix(m *core.Matrix, cfg *contract.Config, duration time.Duration) error {
	return PrintMatrix(m, cfg, duration)
}

// WriteFolders prints folder listings using the configured output format.
func (ow *OutWriter) WriteFolders(folders []schema.Folder, activeID string, cfg *contract.Config) error {
	return PrintFolderList(folders, activeID, cfg)
}

// WriteCompanies prints company listings using the configured output format.
func (ow *OutWriter) WriteCompanies(companies []schema.Company, activeID string, cfg *contract.Config) error {
	return PrintCompanyList(companies, activeID, cfg)
}

// WriteMatrixConfig prints a folder's axes and thresholds.
func (ow *OutWriter) WriteMatrixConfig(folder *schema.Folder, cfg *contract.Config) error {
	return PrintMatrixConfig(folder, cfg)
}

// GetMaxTableNameWidth calculates the maximum width for use-case names
// in table output based on terminal width and table configuration.
func GetMaxTableNameWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for fixed columns with table formatting
	baseWidth := 35 // Rank + Value + Complexity + Levels with borders/padding

	// Add detail columns with formatting
	if cfg.Detail {
		baseWidth += 45 // Advice + Created columns with formatting
	}

	// Reserve space for table borders, separators, and padding
	baseWidth += 15

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 60 {
		return 60
	}
	return available
}

// truncateName shortens a name for table display, keeping the head.
func truncateName(name string, maxWidth int) string {
	if maxWidth <= 0 || len(name) <= maxWidth {
		return name
	}
	if maxWidth <= 3 {
		return name[:maxWidth]
	}
	return name[:maxWidth-3] + "..."
}
