package coverage

import "encoding/xml"

// Report is the root of a Clover XML report.
type Report struct {
	XMLName     xml.Name `xml:"coverage"`
	Generated   int64    `xml:"generated,attr"`
	Clover      string   `xml:"clover,attr"`
	Project     Project  `xml:"project"`
	TestProject *Project `xml:"testproject"`
}

type Project struct {
	Name      string    `xml:"name,attr"`
	Timestamp int64     `xml:"timestamp,attr"`
	Metrics   Metrics   `xml:"metrics"`
	Packages  []Package `xml:"package"`
	// Files holds files of the default package.
	Files []File `xml:"file"`
}

type Package struct {
	Name    string  `xml:"name,attr"`
	Metrics Metrics `xml:"metrics"`
	Files   []File  `xml:"file"`
}

type File struct {
	Name    string  `xml:"name,attr"`
	Path    string  `xml:"path,attr"`
	Metrics Metrics `xml:"metrics"`
	Classes []Class `xml:"class"`
}

type Class struct {
	Name    string  `xml:"name,attr"`
	Metrics Metrics `xml:"metrics"`
}

// Metrics are the counters Clover emits at every level.
type Metrics struct {
	Statements          int `xml:"statements,attr"`
	CoveredStatements   int `xml:"coveredstatements,attr"`
	Conditionals        int `xml:"conditionals,attr"`
	CoveredConditionals int `xml:"coveredconditionals,attr"`
	Methods             int `xml:"methods,attr"`
	CoveredMethods      int `xml:"coveredmethods,attr"`
	Elements            int `xml:"elements,attr"`
	CoveredElements     int `xml:"coveredelements,attr"`
	Classes             int `xml:"classes,attr"`
	Files               int `xml:"files,attr"`
	Packages            int `xml:"packages,attr"`
	LOC                 int `xml:"loc,attr"`
	NCLOC               int `xml:"ncloc,attr"`
}

// TotalPercent is Clover's total percentage coverage: covered statements,
// branches and methods over all of them. ok is false when there is nothing
// to cover.
func (m Metrics) TotalPercent() (percent float64, ok bool) {
	total := m.Statements + m.Conditionals + m.Methods
	if total == 0 {
		return 0, false
	}
	covered := m.CoveredStatements + m.CoveredConditionals + m.CoveredMethods
	return float64(covered) * 100 / float64(total), true
}
