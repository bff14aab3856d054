// Package form implements schema-driven modal forms: typed field descriptors,
// validation on blur, change and submit, and optional self-submission to the
// backend API.
package form

import (
	"errors"
	"fmt"
	"maps"
)

const (
	DefaultSubmitText = "Guardar"
	DefaultCancelText = "Cancelar"
	SubmittingText    = "Guardando..."
	EmptyOptionLabel  = "Seleccionar..."
)

var (
	ErrNoFields       = errors.New("form: at least one field is required")
	ErrDuplicateField = errors.New("form: duplicate field name")
	ErrUnknownField   = errors.New("form: unknown field")
)

// Schema declares a form.
type Schema struct {
	Name       string
	Title      string
	Fields     []Field
	SubmitText string
	CancelText string
}

// Form is a validated Schema.
type Form struct {
	schema Schema
	index  map[string]int
}

// New validates schema and fills defaults.
func New(schema Schema) (*Form, error) {
	if len(schema.Fields) == 0 {
		return nil, ErrNoFields
	}
	index := make(map[string]int, len(schema.Fields))
	for i, f := range schema.Fields {
		if _, dup := index[f.Name]; f.Name == "" || dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateField, f.Name)
		}
		index[f.Name] = i
	}
	if schema.SubmitText == "" {
		schema.SubmitText = DefaultSubmitText
	}
	if schema.CancelText == "" {
		schema.CancelText = DefaultCancelText
	}
	return &Form{schema: schema, index: index}, nil
}

// MustNew is New for package-level declarations.
func MustNew(schema Schema) *Form {
	f, err := New(schema)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Form) Name() string    { return f.schema.Name }
func (f *Form) Fields() []Field { return f.schema.Fields }
func (f *Form) Schema() Schema  { return f.schema }

// Field looks up a field by name.
func (f *Form) Field(name string) (Field, bool) {
	i, ok := f.index[name]
	if !ok {
		return Field{}, false
	}
	return f.schema.Fields[i], true
}

// State is the interaction state of one form instance.
type State struct {
	Open       bool
	Submitting bool
	Values     Values
	// Errors holds a message per invalid field.
	Errors  map[string]string
	Touched map[string]bool
	// Banner is the endpoint error of the last submission.
	Banner string
}

// Visible returns the error of name when it should be shown.
func (s State) Visible(name string) string {
	if !s.Touched[name] {
		return ""
	}
	return s.Errors[name]
}

// Valid reports whether no field has an error.
func (s State) Valid() bool { return len(s.Errors) == 0 }

// Msg is an interaction dispatched to Update.
type Msg interface{ msg() }

type (
	// Opened shows the form. Defaults override field defaults, e.g. the row being edited.
	Opened struct{ Defaults Values }
	Closed struct{}
	Changed struct {
		Name  string
		Value Value
	}
	Blurred         struct{ Name string }
	SubmitRequested struct{}
	SubmitDone      struct{ Err error }
)

func (Opened) msg()          {}
func (Closed) msg()          {}
func (Changed) msg()         {}
func (Blurred) msg()         {}
func (SubmitRequested) msg() {}
func (SubmitDone) msg()      {}

// Cmd is a side effect requested by Update.
type Cmd uint8

const (
	None Cmd = iota
	// Submit means the values passed validation and must be sent.
	Submit
)

// Update is the single transition function of a form. It never mutates s.
func (f *Form) Update(s State, m Msg) (State, Cmd) {
	s = s.clone()

	switch m := m.(type) {
	case Opened:
		if s.Open {
			return s, None
		}
		s = f.reset(m.Defaults)
		s.Open = true

	case Closed:
		if s.Submitting {
			return s, None
		}
		s = State{}

	case Changed:
		field, ok := f.Field(m.Name)
		if !ok || !s.Open {
			return s, None
		}
		wasTouched := s.Touched[m.Name]
		s.Values[m.Name] = m.Value
		s.Touched[m.Name] = true
		if wasTouched {
			s.setError(m.Name, ValidateField(field, m.Value, s.Values))
		}

	case Blurred:
		field, ok := f.Field(m.Name)
		if !ok || !s.Open {
			return s, None
		}
		s.Touched[m.Name] = true
		s.setError(m.Name, ValidateField(field, s.Values[m.Name], s.Values))

	case SubmitRequested:
		if !s.Open || s.Submitting {
			return s, None
		}
		s.Errors = f.Validate(s.Values)
		for _, fd := range f.schema.Fields {
			s.Touched[fd.Name] = true
		}
		if !s.Valid() {
			return s, None
		}
		s.Submitting = true
		s.Banner = ""
		return s, Submit

	case SubmitDone:
		s.Submitting = false
		if m.Err != nil {
			s.Banner = m.Err.Error()
		}
	}
	return s, None
}

// Validate runs ValidateField for every field and returns the failures.
func (f *Form) Validate(values Values) map[string]string {
	errs := map[string]string{}
	for _, fd := range f.schema.Fields {
		if msg := ValidateField(fd, values[fd.Name], values); msg != "" {
			errs[fd.Name] = msg
		}
	}
	return errs
}

// ValidateNamed validates a single field against values.
func (f *Form) ValidateNamed(name string, values Values) (string, error) {
	fd, ok := f.Field(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return ValidateField(fd, values[name], values), nil
}

// Restore rebuilds an open state from submitted values. Fields missing from
// values keep their defaults.
func (f *Form) Restore(defaults, values Values) State {
	s, _ := f.Update(State{}, Opened{Defaults: defaults})
	for k, v := range values {
		if _, ok := f.index[k]; ok {
			s.Values[k] = v
		}
	}
	return s
}

func (f *Form) reset(overrides Values) State {
	s := State{
		Values:  make(Values, len(f.schema.Fields)),
		Errors:  map[string]string{},
		Touched: map[string]bool{},
	}
	for _, fd := range f.schema.Fields {
		if v, ok := overrides[fd.Name]; ok {
			s.Values[fd.Name] = v
			continue
		}
		s.Values[fd.Name] = fd.initial()
	}
	return s
}

func (s State) clone() State {
	s.Values = s.Values.Clone()
	s.Errors = maps.Clone(s.Errors)
	s.Touched = maps.Clone(s.Touched)
	if s.Errors == nil {
		s.Errors = map[string]string{}
	}
	if s.Touched == nil {
		s.Touched = map[string]bool{}
	}
	return s
}

func (s *State) setError(name, msg string) {
	if msg == "" {
		delete(s.Errors, name)
		return
	}
	s.Errors[name] = msg
}
