package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/casemap/core"
	"github.com/huangsam/casemap/internal/contract"
)

// writeWithFile handles the common pattern of opening a file, writing
// to it, and cleaning up. It accepts a writer function that takes an
// io.Writer and returns an error.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	// Only close if it's not stdout
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}

// writeJSON is a generic JSON encoder that handles indentation consistently.
func writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeCSVWithHeader handles the common pattern of creating a CSV
// writer, writing a header, and writing data rows.
func writeCSVWithHeader(w io.Writer, header []string, writeRows func(*csv.Writer) error) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	if err := writeRows(csvWriter); err != nil {
		return err
	}

	return nil
}

// createFormatter creates the float formatter closure used across
// multiple output types.
func createFormatter(precision int) func(float64) string {
	return func(v float64) string {
		return fmt.Sprintf("%.*f", precision, v)
	}
}

// fmtScore renders a derived total, using a dash for unscored.
func fmtScore(score *float64, fmtFloat func(float64) string) string {
	if score == nil {
		return "-"
	}
	return fmtFloat(*score)
}

// adviceLabel maps a cell tone to its advisory label.
func adviceLabel(tone core.CellTone) string {
	switch tone {
	case core.ToneGreen:
		return contract.PursueValue
	case core.ToneLime:
		return contract.PlanValue
	case core.ToneOrange:
		return contract.CautionValue
	case core.ToneRed:
		return contract.AvoidValue
	default:
		return contract.NeutralValue
	}
}

// colorAdviceLabel maps a cell tone to its colored advisory label.
func colorAdviceLabel(tone core.CellTone, useColors bool) string {
	label := adviceLabel(tone)
	if !useColors {
		return label
	}
	switch tone {
	case core.ToneGreen:
		return contract.PursueColor.Sprint(label)
	case core.ToneLime:
		return contract.PlanColor.Sprint(label)
	case core.ToneOrange:
		return contract.CautionColor.Sprint(label)
	case core.ToneRed:
		return contract.AvoidColor.Sprint(label)
	default:
		return contract.NeutralColor.Sprint(label)
	}
}
