package codegen

import (
	"fmt"
	"go/token"
	"sort"
	"strings"
	"text/template"
)

// fileTemplate emits the generated source. Spacing and alignment are left to
// go/format in Generate; the template only has to be syntactically valid.
const fileTemplate = `// Code generated by ctxgen. DO NOT EDIT.

package {{ .Package }}
{{ .ImportBlock }}
{{- range .Interfaces }}
// {{ .Name }} is satisfied by any context shape carrying the {{ .Method }} field.
type {{ .Name }} interface {
	{{ .Method }}() {{ .Type }}
}
{{ end }}
{{- range .Shapes }}
{{- if .Extends }}
// {{ .Name }} {{ .Doc }}
type {{ .Name }} struct {
	{{ .Extends }}

	{{ .Own.Var }} {{ .Own.Type }}
}

// With{{ .Own.Method }} pushes the {{ .Own.Method }} field onto {{ .Extends }}, producing {{ .Name }}.
func With{{ .Own.Method }}(parent {{ .Extends }}, {{ .Own.Var }} {{ .Own.Type }}) {{ .Name }} {
	return {{ .Name }}{
		{{ .Extends }}: parent,
		{{ .Own.Var }}: {{ .Own.Var }},
	}
}

// Pop{{ .Own.Method }} removes the {{ .Own.Method }} field from {{ .Name }}, returning
// the field value and the remaining {{ .Extends }}.
func Pop{{ .Own.Method }}(c {{ .Name }}) ({{ .Own.Type }}, {{ .Extends }}) {
	return c.{{ .Own.Var }}, c.{{ .Extends }}
}

// {{ .Own.Method }} returns {{ .Own.Doc }}
func (c {{ .Name }}) {{ .Own.Method }}() {{ .Own.Type }} {
	return c.{{ .Own.Var }}
}
{{ else }}
// {{ .Name }} {{ .Doc }}
type {{ .Name }} struct {
{{- range .Fields }}
	{{ .Var }} {{ .Type }}
{{- end }}
}

// New{{ .Name }} builds {{ .Name }} from its fields.
func New{{ .Name }}({{ .Params }}) {{ .Name }} {
	return {{ .Name }}{
{{- range .Fields }}
		{{ .Var }}: {{ .Var }},
{{- end }}
	}
}
{{ range .Getters }}
// {{ .Method }} returns {{ .Doc }}
func (c {{ .Shape }}) {{ .Method }}() {{ .Type }} {
	return c.{{ .Var }}
}
{{ end }}
{{- end }}
{{- end }}
var (
{{- range .Asserts }}
	_ {{ .Iface }} = {{ .Shape }}{}
{{- end }}
)
`

var shapeTemplate = template.Must(template.New("ctxgen").Parse(fileTemplate))

type fieldData struct {
	Shape  string
	Method string
	Var    string
	Type   string
	Doc    string
}

type interfaceData struct {
	Name   string
	Method string
	Type   string
}

type shapeData struct {
	Name    string
	Doc     string
	Extends string
	Fields  []fieldData
	Getters []fieldData
	Own     fieldData
	Params  string
}

type assertData struct {
	Iface string
	Shape string
}

type templateData struct {
	Package     string
	ImportBlock string
	Interfaces  []interfaceData
	Shapes      []shapeData
	Asserts     []assertData
}

// newTemplateData flattens a validated declaration into render-ready form.
func newTemplateData(decl *Declaration) templateData {
	data := templateData{Package: decl.Package}

	data.ImportBlock = importBlock(collectImports(decl))

	seenIface := make(map[string]struct{})

	for i := range decl.Shapes {
		shape := &decl.Shapes[i]

		sd := shapeData{
			Name:    shape.Name,
			Doc:     shapeDoc(shape),
			Extends: shape.Extends,
		}

		for _, field := range shape.Fields {
			fd := fieldData{
				Shape:  shape.Name,
				Method: field.Name,
				Var:    fieldVar(field.Name),
				Type:   field.Type,
				Doc:    fieldDoc(field),
			}
			sd.Fields = append(sd.Fields, fd)
		}

		if shape.Extends != "" {
			sd.Own = sd.Fields[0]
		} else {
			sd.Getters = sd.Fields
			sd.Params = ctorParams(sd.Fields)
		}

		for _, field := range decl.EffectiveFields(shape) {
			iface := "Has" + field.Name

			if _, seen := seenIface[iface]; !seen {
				seenIface[iface] = struct{}{}
				data.Interfaces = append(data.Interfaces, interfaceData{
					Name:   iface,
					Method: field.Name,
					Type:   field.Type,
				})
			}

			data.Asserts = append(data.Asserts, assertData{Iface: iface, Shape: shape.Name})
		}

		data.Shapes = append(data.Shapes, sd)
	}

	return data
}

// collectImports splits the needed import paths into standard-library and
// external groups, each sorted.
func collectImports(decl *Declaration) (std, ext []string) {
	seen := make(map[string]struct{})

	for i := range decl.Shapes {
		for _, field := range decl.Shapes[i].Fields {
			if field.Import == "" {
				continue
			}

			if _, ok := seen[field.Import]; ok {
				continue
			}

			seen[field.Import] = struct{}{}

			if strings.Contains(strings.SplitN(field.Import, "/", 2)[0], ".") {
				ext = append(ext, field.Import)
			} else {
				std = append(std, field.Import)
			}
		}
	}

	sort.Strings(std)
	sort.Strings(ext)

	return std, ext
}

// importBlock renders the import declaration with the standard-library group
// above the external group. Returns "" when no field needs an import.
func importBlock(std, ext []string) string {
	if len(std) == 0 && len(ext) == 0 {
		return ""
	}

	var b strings.Builder

	b.WriteString("\nimport (\n")

	for _, path := range std {
		fmt.Fprintf(&b, "\t%q\n", path)
	}

	if len(std) > 0 && len(ext) > 0 {
		b.WriteString("\n")
	}

	for _, path := range ext {
		fmt.Fprintf(&b, "\t%q\n", path)
	}

	b.WriteString(")\n")

	return b.String()
}

// fieldVar derives the unexported struct field name from the accessor name.
func fieldVar(name string) string {
	v := strings.ToLower(name[:1]) + name[1:]

	if token.IsKeyword(v) {
		v += "Value"
	}

	return v
}

func ctorParams(fields []fieldData) string {
	params := make([]string, 0, len(fields))
	for _, field := range fields {
		params = append(params, fmt.Sprintf("%s %s", field.Var, field.Type))
	}

	return strings.Join(params, ", ")
}

func shapeDoc(shape *Shape) string {
	if shape.Doc != "" {
		return shape.Doc
	}

	if shape.Extends != "" {
		return fmt.Sprintf("extends %s with the %s field.", shape.Extends, shape.Fields[0].Name)
	}

	return "is a generated context shape."
}

func fieldDoc(field Field) string {
	if field.Doc != "" {
		return field.Doc
	}

	return fmt.Sprintf("the %s field.", field.Name)
}
