package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pankaj-dahiya-devops/eks-readiness/internal/models"
)

// RenderJSON writes the report as indented JSON to w, with a trailing
// newline so the output is shell-friendly.
func RenderJSON(w io.Writer, report *models.ReadinessReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
