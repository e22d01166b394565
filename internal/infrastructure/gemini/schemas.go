package gemini

import "github.com/google/generative-ai-go/genai"

// This file holds the fixed prompts and response schemas sent to the model.
// The schemas are part of the external contract: clients of this service
// parse the returned text against the exact same shapes.

// classifyPrompt accompanies the image in every classification call.
const classifyPrompt = `You are a plant pathologist specializing in coconut palms. Examine the photo and classify the palm's health.
If the palm looks healthy, set isHealthy to true, diseaseType to "Healthy" and severity to "N/A".
Otherwise name the disease (for example: Bud Rot, Stem Bleeding, Gray Leaf Spot, Leaf Rot, Caterpillars, Yellowing), judge its severity, and report your confidence as a number between 0 and 1.`

// verdictSchema constrains classification responses to the disease verdict shape.
var verdictSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"isHealthy": {
			Type:        genai.TypeBoolean,
			Description: "Whether the palm shows no signs of disease",
		},
		"diseaseType": {
			Type:        genai.TypeString,
			Description: "Name of the detected disease, or Healthy",
		},
		"severity": {
			Type: genai.TypeString,
			Enum: []string{"Mild", "Moderate", "Severe", "N/A"},
		},
		"confidence": {
			Type:        genai.TypeNumber,
			Description: "Classification confidence between 0 and 1",
		},
	},
	Required: []string{"isHealthy", "diseaseType", "severity", "confidence"},
}

// expertsSchema constrains experts responses to an array of contact records.
var expertsSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":    {Type: genai.TypeString},
			"address": {Type: genai.TypeString},
			"phone":   {Type: genai.TypeString},
		},
		Required: []string{"name", "address", "phone"},
	},
}
