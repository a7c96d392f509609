// Package codegen turns YAML context-shape declarations into Go source.
//
// A declaration names a package and an ordered list of shapes. A base shape
// lists the fields materialized together at the start of a request; an
// extension shape names a parent and adds exactly one field, so that the
// generated With/Pop pair keeps the push/pop identity. Generation fails when
// a shape would carry two fields of the same type or two fields with the
// same name, making duplicate pushes a build-time error rather than a
// runtime surprise.
package codegen

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Declaration errors.
var (
	// ErrDuplicateFieldType is returned when a shape's effective field set
	// carries two fields of the same Go type.
	ErrDuplicateFieldType = errors.New("duplicate field type in shape")

	// ErrDuplicateFieldName is returned when a shape's effective field set
	// carries two fields with the same name.
	ErrDuplicateFieldName = errors.New("duplicate field name in shape")

	// ErrUnknownParent is returned when extends names a shape that was not
	// declared earlier in the file.
	ErrUnknownParent = errors.New("extends references unknown shape")
)

// Field is one value carried by a context shape.
type Field struct {
	// Name is the exported accessor name, e.g. RequestID.
	Name string `koanf:"name" validate:"required"`

	// Type is the Go type expression, e.g. string or *slog.Logger.
	Type string `koanf:"type" validate:"required"`

	// Import is the import path the type needs, if any.
	Import string `koanf:"import"`

	// Doc completes the sentence "<Name> returns ..." in the generated
	// accessor. Optional.
	Doc string `koanf:"doc"`
}

// Shape is one context type to generate. A shape with Extends set adds
// exactly one field on top of its parent.
type Shape struct {
	Name    string  `koanf:"name"    validate:"required"`
	Extends string  `koanf:"extends"`
	Doc     string  `koanf:"doc"`
	Fields  []Field `koanf:"fields"  validate:"required,min=1,dive"`
}

// Declaration is a full ctxgen input file.
type Declaration struct {
	Package string  `koanf:"package" validate:"required"`
	Shapes  []Shape `koanf:"shapes"  validate:"required,min=1,dive"`
}

// Load reads and validates a declaration from a YAML file.
func Load(path string) (*Declaration, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading declaration %q: %w", path, err)
	}

	return unmarshal(k)
}

// Parse reads and validates a declaration from in-memory YAML.
func Parse(data []byte) (*Declaration, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parsing declaration: %w", err)
	}

	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (*Declaration, error) {
	var decl Declaration

	if err := k.Unmarshal("", &decl); err != nil {
		return nil, fmt.Errorf("unmarshalling declaration: %w", err)
	}

	if err := decl.Validate(); err != nil {
		return nil, err
	}

	return &decl, nil
}

// Validate checks struct tags and the semantic rules: identifiers are valid
// Go names, shape names are unique, extends resolves to an earlier shape,
// extension shapes add exactly one field, and no shape's effective field set
// repeats a type or a name.
func (d *Declaration) Validate() error {
	if err := validate.Struct(d); err != nil {
		return formatValidationErrors(err)
	}

	if !token.IsIdentifier(d.Package) {
		return fmt.Errorf("package %q is not a valid Go identifier", d.Package)
	}

	declared := make(map[string]*Shape, len(d.Shapes))

	for i := range d.Shapes {
		shape := &d.Shapes[i]

		if err := d.validateShape(shape, declared); err != nil {
			return err
		}

		declared[shape.Name] = shape
	}

	return d.validateAccessors()
}

// validateAccessors checks that a field name means one type across the whole
// declaration. Accessor names become Has interfaces shared by every shape, so
// two shapes disagreeing on a field's type cannot generate compilable code.
func (d *Declaration) validateAccessors() error {
	types := make(map[string]string)

	for i := range d.Shapes {
		for _, field := range d.Shapes[i].Fields {
			if prev, ok := types[field.Name]; ok && prev != field.Type {
				return fmt.Errorf("field %q declared as both %s and %s",
					field.Name, prev, field.Type)
			}

			types[field.Name] = field.Type
		}
	}

	return nil
}

func (d *Declaration) validateShape(shape *Shape, declared map[string]*Shape) error {
	if !token.IsIdentifier(shape.Name) || !token.IsExported(shape.Name) {
		return fmt.Errorf("shape name %q must be an exported Go identifier", shape.Name)
	}

	if _, dup := declared[shape.Name]; dup {
		return fmt.Errorf("shape %q declared twice", shape.Name)
	}

	if shape.Extends != "" {
		if _, ok := declared[shape.Extends]; !ok {
			return fmt.Errorf("shape %q: %w: %q", shape.Name, ErrUnknownParent, shape.Extends)
		}

		if len(shape.Fields) != 1 {
			return fmt.Errorf("shape %q extends %q and must add exactly one field, has %d",
				shape.Name, shape.Extends, len(shape.Fields))
		}
	}

	byType := make(map[string]string)
	byName := make(map[string]struct{})

	for _, field := range d.EffectiveFields(shape) {
		if !token.IsIdentifier(field.Name) || !token.IsExported(field.Name) {
			return fmt.Errorf("shape %q: field name %q must be an exported Go identifier",
				shape.Name, field.Name)
		}

		if prev, seen := byType[field.Type]; seen {
			return fmt.Errorf("shape %q: %w: %q and %q are both %s",
				shape.Name, ErrDuplicateFieldType, prev, field.Name, field.Type)
		}

		if _, seen := byName[field.Name]; seen {
			return fmt.Errorf("shape %q: %w: %q", shape.Name, ErrDuplicateFieldName, field.Name)
		}

		byType[field.Type] = field.Name
		byName[field.Name] = struct{}{}
	}

	return nil
}

// EffectiveFields returns the shape's full field set, inherited fields first
// in declaration order.
func (d *Declaration) EffectiveFields(shape *Shape) []Field {
	if shape.Extends == "" {
		return shape.Fields
	}

	parent := d.shape(shape.Extends)
	if parent == nil {
		return shape.Fields
	}

	fields := d.EffectiveFields(parent)

	return append(append([]Field(nil), fields...), shape.Fields...)
}

func (d *Declaration) shape(name string) *Shape {
	for i := range d.Shapes {
		if d.Shapes[i].Name == name {
			return &d.Shapes[i]
		}
	}

	return nil
}
