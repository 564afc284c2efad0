// Package sidecar renders a SidecarDocument as YAML. It returns bytes
// only; where the document lands on disk is the caller's business.
package sidecar

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jwhitt/romannotate/constants"
	"github.com/jwhitt/romannotate/model"
)

type yamlMetadata struct {
	Artist  string `yaml:"artist,omitempty"`
	Title   string `yaml:"title,omitempty"`
	Release string `yaml:"release,omitempty"`
	Year    uint   `yaml:"year,omitempty"`
}

type yamlDocument struct {
	Source     string        `yaml:"source,omitempty"`
	Key        string        `yaml:"key"`
	Mode       string        `yaml:"mode"`
	Confidence float64       `yaml:"confidence"`
	Meter      string        `yaml:"meter,omitempty"`
	Meters     []string      `yaml:"meters,omitempty"`
	Bars       []string      `yaml:"bars"`
	Metadata   *yamlMetadata `yaml:"metadata,omitempty"`
	Warnings   []string      `yaml:"warnings,omitempty"`
}

// Render serializes the document. Output is deterministic for a given
// document, so re-running the pipeline on the same file reproduces the
// sidecar byte for byte.
func Render(doc *model.SidecarDocument) ([]byte, error) {
	out := yamlDocument{
		Source:     doc.SourceFilename,
		Key:        doc.Key.TonicName(),
		Mode:       doc.Key.Mode.String(),
		Confidence: doc.Key.Confidence,
		Bars:       make([]string, 0, len(doc.Measures)),
	}
	if doc.Meter != nil {
		out.Meter = doc.Meter.String()
	} else {
		for _, m := range doc.Meters {
			out.Meters = append(out.Meters, m.String())
		}
	}
	for _, mh := range doc.Measures {
		out.Bars = append(out.Bars, mh.Token())
	}
	if doc.Metadata != nil {
		out.Metadata = &yamlMetadata{
			Artist:  doc.Metadata.Artist,
			Title:   doc.Metadata.Title,
			Release: doc.Metadata.Release,
			Year:    doc.Metadata.Year,
		}
	}
	for _, d := range doc.Diagnostics {
		out.Warnings = append(out.Warnings, fmt.Sprintf("%v: %v", d.Code, d.Message))
	}
	return yaml.Marshal(&out)
}

// Path is the conventional sidecar location for a source file: same base
// name, sidecar extension, same directory.
func Path(sourcePath string) string {
	ext := filepath.Ext(sourcePath)
	return strings.TrimSuffix(sourcePath, ext) + constants.SidecarExtension
}
