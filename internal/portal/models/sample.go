package models

type Sample struct {
	SampleID       string `json:"sample_id"`
	SampleBarcode  string `json:"sample_barcode,omitempty"`
	SampleSite     string `json:"sample_site,omitempty"`
	SampleDatetime string `json:"sample_datetime,omitempty"`
	SampleNotes    string `json:"sample_notes,omitempty"`
	SampleLocked   bool   `json:"sample_locked,omitempty"`
}

// SampleSites lists the body sites a sample can be taken from.
var SampleSites = []string{
	"Ear wax", "Forehead", "Fur", "Hair", "Left hand",
	"Left leg", "Mouth", "Nares", "Nasal mucus", "Right hand",
	"Right leg", "Stool", "Tears", "Torso", "Vaginal mucus",
}
