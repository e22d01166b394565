package usecase

import (
	"fmt"
	"strings"
)

// Prompt templates and supported response languages live together here so
// wording changes stay in one place.

// treatmentFallback is the fixed user-facing reply after all generation
// attempts fail. It is informational, never an error.
const treatmentFallback = "We couldn't prepare a treatment plan right now. Please try again in a few minutes."

var languageNames = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"kn": "Kannada",
	"ml": "Malayalam",
	"ta": "Tamil",
	"te": "Telugu",
}

// languageName maps an enumerated language code to its display name.
// Unknown codes fall back to English.
func languageName(code string) string {
	if name, ok := languageNames[strings.ToLower(strings.TrimSpace(code))]; ok {
		return name
	}
	return "English"
}

func buildTreatmentPrompt(diseaseType, language, productsBlock string) string {
	prompt := fmt.Sprintf(`You are an experienced coconut farming advisor. A coconut palm has been diagnosed with "%s". Respond in %s.

Give the farmer a short, practical treatment plan: what to do immediately, which remedies to apply and how, and how to keep the disease from spreading to nearby palms.`,
		strings.TrimSpace(diseaseType), languageName(language))

	if productsBlock != "" {
		prompt += "\n\nEnd your answer by reproducing the following product list exactly as written, byte for byte, without translating or reformatting it:" + productsBlock
	}
	return prompt
}

func buildExpertsPrompt(location string) string {
	return fmt.Sprintf(`List agricultural experts, krishi vigyan kendras, and plant health centres that can help a coconut farmer near this location: %s.
Prefer real, verifiable entries. For each expert give the name, a full postal address, and a phone number.`, location)
}

func buildAssistantPrompt(question, language string) string {
	return fmt.Sprintf(`You are Kalpavruksha, a friendly assistant for coconut farmers. Answer the question below in %s with practical, concise guidance.

Question: %s`, languageName(language), strings.TrimSpace(question))
}
