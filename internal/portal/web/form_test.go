package web

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/kitportal/internal/portal/models"
)

func TestSampleSchema(t *testing.T) {
	s := sampleSchema()

	require.Len(t, s.Groups, 1)
	g := s.Groups[0]
	assert.Equal(t, "Edit Sample Information", g.Legend)
	require.Len(t, g.Fields, 4)

	byModel := map[string]FormField{}
	for _, f := range g.Fields {
		byModel[f.Model] = f
	}
	assert.True(t, byModel["sample_barcode"].Disabled)
	assert.True(t, byModel["sample_datetime"].Required)
	assert.Equal(t, "dateTimePicker", byModel["sample_datetime"].Type)
	assert.True(t, byModel["sample_site"].Required)
	assert.Equal(t, models.SampleSites, byModel["sample_site"].Values)
	assert.Equal(t, "textArea", byModel["sample_notes"].Type)
	assert.False(t, byModel["sample_notes"].Required)
}

func TestSampleSchema_JSON(t *testing.T) {
	b, err := json.Marshal(sampleSchema())
	require.NoError(t, err)

	var raw struct {
		Groups []struct {
			Fields []map[string]any `json:"fields"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(b, &raw))
	barcode := raw.Groups[0].Fields[0]
	assert.Equal(t, "text", barcode["inputType"])
	assert.Equal(t, true, barcode["disabled"])
	_, hasRequired := barcode["required"]
	assert.False(t, hasRequired)
}

func TestSampleModel_OnlySchemaFields(t *testing.T) {
	sample := &models.Sample{
		SampleID:       "x1",
		SampleBarcode:  "000001234",
		SampleSite:     "Stool",
		SampleDatetime: "2020-01-02 03:04",
		SampleLocked:   true,
	}

	assert.Equal(t, map[string]string{
		"sample_barcode":  "000001234",
		"sample_datetime": "2020-01-02 03:04",
		"sample_site":     "Stool",
		"sample_notes":    "",
	}, sampleModel(sampleSchema(), sample))
}

func TestEditableValues_DropsLockedAndUnknownKeys(t *testing.T) {
	form := map[string]string{
		"sample_id":       "x1",
		"sample_locked":   "true",
		"sample_barcode":  "000001234",
		"sample_site":     "Stool",
		"sample_datetime": "2020-01-02 03:04",
	}

	assert.Equal(t, []string{"sample_datetime", "sample_site", "sample_notes"}, sampleSchema().Models(true))
	assert.Equal(t, map[string]string{
		"sample_site":     "Stool",
		"sample_datetime": "2020-01-02 03:04",
	}, editableValues(sampleSchema(), form))
}
