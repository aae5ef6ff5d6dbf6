package web

import "github.com/dmitrijs2005/kitportal/internal/portal/models"

// FormSchema is a vue-form-generator schema rendered by the browser.
type FormSchema struct {
	Groups []FormGroup `json:"groups"`
}

type FormGroup struct {
	Legend string      `json:"legend"`
	Fields []FormField `json:"fields"`
}

type FormField struct {
	Type      string   `json:"type"`
	InputType string   `json:"inputType,omitempty"`
	ID        string   `json:"id"`
	Label     string   `json:"label"`
	Model     string   `json:"model"`
	Values    []string `json:"values,omitempty"`
	Required  bool     `json:"required,omitempty"`
	Disabled  bool     `json:"disabled,omitempty"`
}

type schemaBuilder struct {
	schema  FormSchema
	current *FormGroup
}

func newSchemaBuilder() *schemaBuilder {
	return &schemaBuilder{}
}

func (b *schemaBuilder) startGroup(legend string) *schemaBuilder {
	b.current = &FormGroup{Legend: legend}
	return b
}

func (b *schemaBuilder) add(f FormField) *schemaBuilder {
	b.current.Fields = append(b.current.Fields, f)
	return b
}

func (b *schemaBuilder) endGroup() *schemaBuilder {
	b.schema.Groups = append(b.schema.Groups, *b.current)
	b.current = nil
	return b
}

func (b *schemaBuilder) build() FormSchema {
	return b.schema
}

func inputField(model, label string) FormField {
	return FormField{Type: "input", InputType: "text", ID: model, Label: label, Model: model}
}

func textAreaField(model, label string) FormField {
	return FormField{Type: "textArea", ID: model, Label: label, Model: model}
}

func selectField(model, label string, values []string) FormField {
	return FormField{Type: "select", ID: model, Label: label, Model: model, Values: values}
}

func dateTimeField(model, label string) FormField {
	return FormField{Type: "dateTimePicker", ID: model, Label: label, Model: model}
}

// sampleSchema is the edit form of a single sample. The barcode is shown
// but cannot be changed.
func sampleSchema() FormSchema {
	barcode := inputField("sample_barcode", "Barcode")
	barcode.Disabled = true
	when := dateTimeField("sample_datetime", "Date and Time")
	when.Required = true
	site := selectField("sample_site", "Site", models.SampleSites)
	site.Required = true

	return newSchemaBuilder().
		startGroup("Edit Sample Information").
		add(barcode).
		add(when).
		add(site).
		add(textAreaField("sample_notes", "Notes")).
		endGroup().
		build()
}

// Models lists the model keys of the schema; editableOnly skips disabled
// fields.
func (s FormSchema) Models(editableOnly bool) []string {
	var keys []string
	for _, g := range s.Groups {
		for _, f := range g.Fields {
			if editableOnly && f.Disabled {
				continue
			}
			keys = append(keys, f.Model)
		}
	}
	return keys
}

// sampleModel holds the sample's values for the schema's fields only.
func sampleModel(schema FormSchema, sample *models.Sample) map[string]string {
	values := map[string]string{
		"sample_barcode":  sample.SampleBarcode,
		"sample_datetime": sample.SampleDatetime,
		"sample_site":     sample.SampleSite,
		"sample_notes":    sample.SampleNotes,
	}
	model := make(map[string]string)
	for _, key := range schema.Models(false) {
		model[key] = values[key]
	}
	return model
}

// editableValues keeps the submitted values of the schema's editable fields.
func editableValues(schema FormSchema, form map[string]string) map[string]string {
	out := make(map[string]string)
	for _, key := range schema.Models(true) {
		if v, ok := form[key]; ok {
			out[key] = v
		}
	}
	return out
}
