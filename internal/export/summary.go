// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/keyword-trends/pkg/types"
)

// WriteSummary writes s to path as YAML or JSON.
func WriteSummary(path string, s types.Summary, format types.SummaryFormat) error {
	return writeAtomic(path, func(w io.Writer) error {
		return EncodeSummary(w, s, format)
	})
}

// EncodeSummary encodes s to w in the given format.
func EncodeSummary(w io.Writer, s types.Summary, format types.SummaryFormat) error {
	switch format {
	case types.SummaryJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case types.SummaryYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown summary format %q", format)
	}
}

// SummaryExt returns the file extension for format.
func SummaryExt(format types.SummaryFormat) string {
	if format == types.SummaryJSON {
		return "json"
	}
	return "yaml"
}
