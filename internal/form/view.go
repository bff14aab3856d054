package form

import "strconv"

// View is the render model of an open form.
type View struct {
	Name       string
	Title      string
	Action     string
	CancelHref string
	SubmitText string
	CancelText string
	Submitting bool
	Banner     string
	Fields     []FieldView
	// Hidden carries extra state, e.g. the table state of the page behind the modal.
	Hidden map[string]string
}

type FieldView struct {
	Name        string
	Label       string
	Type        FieldType
	Placeholder string
	Required    bool
	Disabled    bool
	Value       string
	Checked     bool
	Min         string
	Max         string
	Step        string
	Options     []OptionView
	Error       string
}

func (v FieldView) Multiline() bool  { return v.Type == TextArea }
func (v FieldView) IsSelect() bool   { return v.Type == Select }
func (v FieldView) IsCheckbox() bool { return v.Type == Checkbox }

type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

// View builds the render model of s. action is the POST target of the form.
func (f *Form) View(s State, action, cancelHref string) View {
	v := View{
		Name:       f.schema.Name,
		Title:      f.schema.Title,
		Action:     action,
		CancelHref: cancelHref,
		SubmitText: f.schema.SubmitText,
		CancelText: f.schema.CancelText,
		Submitting: s.Submitting,
		Banner:     s.Banner,
	}
	if s.Submitting {
		v.SubmitText = SubmittingText
	}
	for _, fd := range f.schema.Fields {
		val, ok := s.Values[fd.Name]
		if !ok {
			val = fd.initial()
		}
		fv := FieldView{
			Name:        fd.Name,
			Label:       fd.Label,
			Type:        fd.Type,
			Placeholder: fd.Placeholder,
			Required:    fd.Required,
			Disabled:    fd.Disabled || s.Submitting,
			Value:       val.String(),
			Checked:     fd.Type == Checkbox && val.Truthy(),
			Min:         bound(fd.Min),
			Max:         bound(fd.Max),
			Step:        bound(fd.Step),
			Error:       s.Visible(fd.Name),
		}
		if fd.Type == Password {
			fv.Value = ""
		}
		if fd.Type == Select {
			fv.Options = append(fv.Options, OptionView{Value: "", Label: EmptyOptionLabel, Selected: val.String() == ""})
			for _, o := range fd.Options {
				ov := o.Value.String()
				fv.Options = append(fv.Options, OptionView{Value: ov, Label: o.Label, Selected: ov == val.String()})
			}
		}
		v.Fields = append(v.Fields, fv)
	}
	return v
}

func bound(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}
