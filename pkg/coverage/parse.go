// Package coverage reads Clover XML reports.
package coverage

import (
	"encoding/xml"
	"io"
	"os"

	"github.com/cockroachdb/errors"

	errUtils "github.com/cloverkit/cloverkit/errors"
)

// Parse decodes a Clover XML report.
func Parse(r io.Reader) (*Report, error) {
	var report Report
	if err := xml.NewDecoder(r).Decode(&report); err != nil {
		return nil, errUtils.Wrap(err, errUtils.ErrParseCoverageReport, errUtils.ErrParseCoverageReport.Error()).Err()
	}
	return &report, nil
}

// Load reads the Clover XML report at path.
func Load(path string) (*Report, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, errUtils.Build(errUtils.ErrCoverageReportNotFound).
			WithHint("Enable `clover.report.xml` and run `cloverkit report` first").
			WithContext("path", path).
			Err()
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	report, err := Parse(f)
	if err != nil {
		return nil, errUtils.Build(err).WithContext("path", path).Err()
	}
	return report, nil
}
