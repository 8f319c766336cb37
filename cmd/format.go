package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const (
	formatYAML  = "yaml"
	formatJSON  = "json"
	formatTable = "table"
)

var errInvalidFormat = errors.New("invalid output format")

// printStructured writes v as YAML or JSON.
func printStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return errors.Wrapf(errInvalidFormat, "%q (supported: %s, %s)", format, formatYAML, formatJSON)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
