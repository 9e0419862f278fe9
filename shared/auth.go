package shared

type ApiErrorType string

const (
	ApiErrorTypeInvalidToken       ApiErrorType = "invalid_token"
	ApiErrorTypeInvalidCredentials ApiErrorType = "invalid_credentials"
	ApiErrorTypeEmailTaken         ApiErrorType = "email_taken"
	ApiErrorTypeNotFound           ApiErrorType = "not_found"
	ApiErrorTypeDuplicateWird      ApiErrorType = "duplicate_wird"
	ApiErrorTypeUnsupportedAudio   ApiErrorType = "unsupported_audio_format"
	ApiErrorTypeTranscriptionFail  ApiErrorType = "transcription_failed"
	ApiErrorTypeModelFail          ApiErrorType = "model_request_failed"

	ApiErrorTypeOther ApiErrorType = "other"
)

type ApiError struct {
	Type   ApiErrorType `json:"type"`
	Status int          `json:"status"`
	Msg    string       `json:"msg"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateAccountRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type GoogleSignInRequest struct {
	IdToken string `json:"idToken"`
}

type SessionResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
