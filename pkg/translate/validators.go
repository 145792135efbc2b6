package translate

// TranslatePayload represents the request body for a translation.
type TranslatePayload struct {
	Text           string `json:"text" validate:"required"`
	TargetLanguage string `json:"targetLanguage" mod:"trim" validate:"required,lang"`
	SourceLanguage string `json:"sourceLanguage" mod:"trim" validate:"lang"`
}

// TranslateResponse is the translation result returned to the client.
type TranslateResponse struct {
	TranslatedText string `json:"translatedText"`
	SourceLanguage string `json:"sourceLanguage,omitempty"`
	TargetLanguage string `json:"targetLanguage"`
	Fallback       bool   `json:"fallback"`
}
