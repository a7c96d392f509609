package codegen

import (
	"bytes"
	"fmt"
	"go/format"
)

// Generate validates the declaration and renders it to gofmt-formatted Go
// source.
func Generate(decl *Declaration) ([]byte, error) {
	if err := decl.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer

	if err := shapeTemplate.Execute(&buf, newTemplateData(decl)); err != nil {
		return nil, fmt.Errorf("rendering shapes: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}

	return src, nil
}

// GenerateFile loads a declaration file and renders it.
func GenerateFile(path string) ([]byte, error) {
	decl, err := Load(path)
	if err != nil {
		return nil, err
	}

	return Generate(decl)
}
