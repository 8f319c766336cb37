package engine

import (
	"bytes"
	"encoding/xml"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	errUtils "github.com/cloverkit/cloverkit/errors"
)

const (
	// TargetName is the single target every rendered build file defines.
	TargetName = "cloverkit"

	cloverTaskdefResource = "cloverlib.xml"
	licensePathProperty   = "clover.license.path"
)

// BuildFile describes the Ant project wrapped around a list of tasks.
type BuildFile struct {
	// Classpath holds the Clover jars backing the cloverlib.xml taskdef.
	Classpath       []string
	LicenseLocation string
	BaseDir         string
	Tasks           []Task
}

// Render encodes the build file as Ant XML.
func Render(bf BuildFile) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")

	project := start("project", Attr{Key: "name", Value: TargetName}, Attr{Key: "default", Value: TargetName})
	if bf.BaseDir != "" {
		project.Attr = append(project.Attr, xml.Attr{Name: xml.Name{Local: "basedir"}, Value: bf.BaseDir})
	}

	prologue := make([]Task, 0, 2)
	if bf.LicenseLocation != "" {
		prologue = append(prologue, NewTask("property").With("name", licensePathProperty).With("value", bf.LicenseLocation))
	}
	prologue = append(prologue, NewTask("taskdef").
		With("resource", cloverTaskdefResource).
		With("classpath", strings.Join(bf.Classpath, string(filepath.ListSeparator))))

	target := NewTask("target").With("name", TargetName).WithChild(bf.Tasks...)

	if err := enc.EncodeToken(project); err != nil {
		return nil, wrapRender(err)
	}
	for _, t := range append(prologue, target) {
		if err := encodeTask(enc, t); err != nil {
			return nil, wrapRender(err)
		}
	}
	if err := enc.EncodeToken(project.End()); err != nil {
		return nil, wrapRender(err)
	}
	if err := enc.Flush(); err != nil {
		return nil, wrapRender(err)
	}
	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

func encodeTask(enc *xml.Encoder, t Task) error {
	if t.Name == "" {
		return errors.New("task without a name")
	}
	el := start(t.Name, t.Attrs...)
	if err := enc.EncodeToken(el); err != nil {
		return err
	}
	for _, c := range t.Children {
		if err := encodeTask(enc, c); err != nil {
			return err
		}
	}
	return enc.EncodeToken(el.End())
}

func start(name string, attrs ...Attr) xml.StartElement {
	el := xml.StartElement{Name: xml.Name{Local: name}}
	for _, a := range attrs {
		el.Attr = append(el.Attr, xml.Attr{Name: xml.Name{Local: a.Key}, Value: a.Value})
	}
	return el
}

func wrapRender(err error) error {
	return errUtils.Wrap(err, errUtils.ErrRenderBuildFile, errUtils.ErrRenderBuildFile.Error()).Err()
}
