package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/authlink/internal/model"
)

// WriteJSON renders the result as JSON to path, or stdout when path is
// "-" or empty.
func WriteJSON(result *model.ConversionResult, path string, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "" || path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

// Summary writes a human-oriented digest of the result.
func Summary(w io.Writer, result *model.ConversionResult) {
	fmt.Fprintf(w, "%s: %d statement(s)", result.Authority, len(result.Statements))
	if result.ExistingEntityID != "" {
		fmt.Fprintf(w, ", matched %s", result.ExistingEntityID)
	}
	fmt.Fprintln(w)
	for _, s := range result.Statements {
		fmt.Fprintf(w, "  %s = %s\n", s.PropertyID, s.Value)
	}
	if len(result.Warnings) > 0 {
		fmt.Fprintf(w, "  warnings (%d):\n", len(result.Warnings))
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "    - %s\n", warn)
		}
	}
	if result.Review != nil {
		fmt.Fprintf(w, "  review note (%s):\n    %s\n", result.Review.Provider, result.Review.Text)
	}
}
