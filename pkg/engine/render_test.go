package engine

import (
	"encoding/xml"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errUtils "github.com/cloverkit/cloverkit/errors"
)

type renderedNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr     `xml:",any,attr"`
	Children []renderedNode `xml:",any"`
}

func (n renderedNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func TestRender(t *testing.T) {
	tests := []struct {
		name          string
		license       string
		wantPrologue  []string
		wantLicense   string
		wantClasspath string
	}{
		{
			name:          "without license",
			wantPrologue:  []string{"taskdef", "target"},
			wantClasspath: strings.Join([]string{"/lib/clover.jar", "/lib/extra.jar"}, string(filepath.ListSeparator)),
		},
		{
			name:          "with license",
			license:       "/etc/clover.license",
			wantPrologue:  []string{"property", "taskdef", "target"},
			wantLicense:   "/etc/clover.license",
			wantClasspath: strings.Join([]string{"/lib/clover.jar", "/lib/extra.jar"}, string(filepath.ListSeparator)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Render(BuildFile{
				Classpath:       []string{"/lib/clover.jar", "/lib/extra.jar"},
				LicenseLocation: tt.license,
				BaseDir:         "/work/app",
				Tasks: []Task{
					NewTask("clover-report").With("initString", "/work/app/build/.clover/clover.db").WithChild(
						NewTask("current").With("outfile", "/r/clover.xml").With("title", "app").WithChild(
							NewTask("format").With("type", "xml"),
						),
					),
				},
			})
			require.NoError(t, err)

			var project renderedNode
			require.NoError(t, xml.Unmarshal(data, &project))

			assert.Equal(t, "project", project.XMLName.Local)
			assert.Equal(t, TargetName, project.attr("default"))
			assert.Equal(t, "/work/app", project.attr("basedir"))

			var names []string
			for _, c := range project.Children {
				names = append(names, c.XMLName.Local)
			}
			assert.Equal(t, tt.wantPrologue, names)

			if tt.wantLicense != "" {
				assert.Equal(t, "clover.license.path", project.Children[0].attr("name"))
				assert.Equal(t, tt.wantLicense, project.Children[0].attr("value"))
			}

			taskdef := project.Children[len(project.Children)-2]
			assert.Equal(t, "cloverlib.xml", taskdef.attr("resource"))
			assert.Equal(t, tt.wantClasspath, taskdef.attr("classpath"))

			target := project.Children[len(project.Children)-1]
			assert.Equal(t, TargetName, target.attr("name"))
			require.Len(t, target.Children, 1)
			report := target.Children[0]
			assert.Equal(t, "clover-report", report.XMLName.Local)
			assert.Equal(t, "xml", report.Children[0].Children[0].attr("type"))
		})
	}
}

func TestRender_PreservesAttributeOrderAndEscapes(t *testing.T) {
	data, err := Render(BuildFile{
		Classpath: []string{"/lib/clover.jar"},
		Tasks: []Task{
			NewTask("statementContext").With("name", "log").With("regexp", `^LOG\.debug\(.*<"x">&`),
		},
	})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, `<statementContext name="log" regexp="^LOG\.debug\(.*&lt;&#34;x&#34;&gt;&amp;">`)
}

func TestRender_RejectsUnnamedTask(t *testing.T) {
	_, err := Render(BuildFile{Tasks: []Task{{}}})

	assert.ErrorIs(t, err, errUtils.ErrRenderBuildFile)
}
