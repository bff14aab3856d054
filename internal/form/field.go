package form

// FieldType selects the input rendered for a field.
type FieldType string

const (
	Text     FieldType = "text"
	Numeric  FieldType = "number"
	Email    FieldType = "email"
	Password FieldType = "password"
	TextArea FieldType = "textarea"
	Select   FieldType = "select"
	Date     FieldType = "date"
	Checkbox FieldType = "checkbox"
)

// Option is one choice of a select field.
type Option struct {
	Value Value
	Label string
}

// Validator returns an error message for v, or "". all holds every current value.
type Validator func(v Value, all Values) string

// Field describes one input.
type Field struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Required    bool
	Min         *float64
	Max         *float64
	Step        *float64
	Options     []Option
	Validate    Validator
	Disabled    bool
	// Default is used when the form opens; nil means the empty value of the type.
	Default *Value
}

// Bound returns a pointer for Min, Max and Step.
func Bound(f float64) *float64 { return &f }

// Preset returns a pointer for Default.
func Preset(v Value) *Value { return &v }

func (f Field) initial() Value {
	if f.Default != nil {
		return *f.Default
	}
	if f.Type == Checkbox {
		return Bool(false)
	}
	return String("")
}

func (f Field) hasBoolOptions() bool {
	for _, o := range f.Options {
		if o.Value.Kind() == KindBool {
			return true
		}
	}
	return false
}
