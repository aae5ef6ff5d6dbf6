package models

import "encoding/json"

// Source types understood by the private API.
const (
	SourceTypeHuman         = "human"
	SourceTypeAnimal        = "animal"
	SourceTypeEnvironmental = "environmental"
)

type Source struct {
	SourceID   string `json:"source_id"`
	SourceType string `json:"source_type"`
	SourceName string `json:"source_name,omitempty"`
}

// Consent carries the server-rendered consent form for a new human source.
type Consent struct {
	ConsentHTML string `json:"consent_html"`
}

type Survey struct {
	SurveyID         string          `json:"survey_id"`
	SurveyTemplateID int             `json:"survey_template_id"`
	SurveyText       json.RawMessage `json:"survey_text,omitempty"`
}

// SurveyTemplate is a survey's form schema, rendered client-side.
type SurveyTemplate struct {
	SurveyTemplateID   int             `json:"survey_template_id"`
	SurveyTemplateText json.RawMessage `json:"survey_template_text"`
}

// SurveyAnswers is the body of POST .../surveys.
type SurveyAnswers struct {
	SurveyTemplateID int               `json:"survey_template_id"`
	SurveyText       map[string]string `json:"survey_text"`
}
