package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Advice label constants for matrix cells and listings.
const (
	PursueValue  = "Pursue"
	PlanValue    = "Plan"
	NeutralValue = "Neutral"
	CautionValue = "Caution"
	AvoidValue   = "Avoid"
)

// Color variables for console output.
var (
	PursueColor  = color.New(color.FgGreen, color.Bold) // pursueColor marks the quick-win zone.
	PlanColor    = color.New(color.FgGreen)             // planColor marks favorable cells.
	CautionColor = color.New(color.FgYellow)            // cautionColor marks heavy-lift cells.
	AvoidColor   = color.New(color.FgRed, color.Bold)   // avoidColor marks the drop zone.
	NeutralColor = color.New(color.FgWhite)             // neutralColor marks everything else.
)

// SelectOutputFile returns the appropriate file handle for output,
// based on the provided file path. An empty path means stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s\n", msg)
}

// LogDebug logs a diagnostic message to stderr when CASEMAP_DEBUG is
// set. Scoring tolerates stale axis references and missing threshold
// entries silently, so diagnostics stay opt-in.
func LogDebug(format string, args ...any) {
	if os.Getenv("CASEMAP_DEBUG") == "" {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Debug "+format+"\n", args...)
}
