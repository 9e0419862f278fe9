package shared

type CreateProfileRequest struct {
	InputMethod          string  `json:"inputMethod"`
	ReflectionFrequency  string  `json:"reflectionFrequency"`
	Language             string  `json:"language"`
	AllowPersonalization bool    `json:"allowPersonalization"`
	LocalOnly            bool    `json:"localOnly"`
	EncryptedProfileData *string `json:"encryptedProfileData,omitempty"`
	EncryptionIv         *string `json:"encryptionIv,omitempty"`
}

type UpdateProfileRequest = CreateProfileRequest

type CreateHalaqaRequest struct {
	Title         string `json:"title"`
	Speaker       string `json:"speaker"`
	Topic         string `json:"topic"`
	Date          string `json:"date"` // YYYY-MM-DD
	KeyReflection string `json:"keyReflection"`
	Impact        string `json:"impact"`
}

type UpdateHalaqaRequest = CreateHalaqaRequest

type HalaqaActionsResponse struct {
	ActionItems []ActionItem `json:"actionItems"`
}

type WirdSuggestionsResponse struct {
	WirdSuggestions []WirdSuggestion `json:"wirdSuggestions"`
}

type InsightsResponse struct {
	Insights []Insight `json:"insights"`
}

type CreateWirdRequest struct {
	Date      string         `json:"date"` // YYYY-MM-DD
	Practices []WirdPractice `json:"practices"`
	Notes     string         `json:"notes"`
}

type UpdateWirdRequest struct {
	Practices []WirdPractice `json:"practices"`
	Notes     *string        `json:"notes,omitempty"`
}

type UpdateWirdPracticeRequest struct {
	PracticeId string `json:"practiceId"`
	Completed  int    `json:"completed"`
}

type AddWirdSuggestionRequest struct {
	Date       string         `json:"date"` // YYYY-MM-DD
	Suggestion WirdSuggestion `json:"suggestion"`
}

type CreateReflectionRequest struct {
	Type          string  `json:"type"` // text | audio
	Content       string  `json:"content"`
	Transcription *string `json:"transcription,omitempty"`
}

type CreateReflectionResponse struct {
	Id            string   `json:"id"`
	Understanding string   `json:"understanding"`
	Questions     []string `json:"questions"`
}

type RespondReflectionRequest struct {
	Content string `json:"content"`
}

type RespondReflectionResponse struct {
	Understanding string   `json:"understanding"`
	Questions     []string `json:"questions"`
}

type ActionItemsResponse struct {
	ActionItems []string `json:"actionItems"`
}

type TranscribeResponse struct {
	Text string `json:"text"`
}
