package shared

import "time"

type User struct {
	Id            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerified"`
}

type Profile struct {
	Id                   string    `json:"id"`
	UserId               string    `json:"userId"`
	InputMethod          string    `json:"inputMethod"`
	ReflectionFrequency  string    `json:"reflectionFrequency"`
	Language             string    `json:"language"`
	AllowPersonalization bool      `json:"allowPersonalization"`
	LocalOnly            bool      `json:"localOnly"`
	EncryptedProfileData *string   `json:"encryptedProfileData,omitempty"`
	EncryptionIv         *string   `json:"encryptionIv,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type ActionItem struct {
	Id          string `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type Insight struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

type Halaqa struct {
	Id              string           `json:"id"`
	UserId          string           `json:"userId"`
	Title           string           `json:"title"`
	Speaker         string           `json:"speaker"`
	Topic           string           `json:"topic"`
	Date            time.Time        `json:"date"`
	KeyReflection   string           `json:"keyReflection"`
	Impact          string           `json:"impact"`
	ActionItems     []ActionItem     `json:"actionItems"`
	WirdSuggestions []WirdSuggestion `json:"wirdSuggestions"`
	Insights        []Insight        `json:"insights"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type WirdPractice struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Target      int    `json:"target"`
	Unit        string `json:"unit"`
	Completed   int    `json:"completed"`
	IsCompleted bool   `json:"isCompleted"`
}

// WirdSuggestion carries the CLEAR framework fields
// (Cue, Low-friction, Expandable, Adaptable, Reward-linked)
// alongside the practice it suggests.
type WirdSuggestion struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Target      int    `json:"target"`
	Unit        string `json:"unit"`
	Description string `json:"description"`

	Cue          string `json:"cue"`
	LowFriction  string `json:"lowFriction"`
	Expandable   string `json:"expandable"`
	Adaptable    string `json:"adaptable"`
	RewardLinked string `json:"rewardLinked"`
}

type WirdEntry struct {
	Id         string         `json:"id"`
	UserId     string         `json:"userId"`
	Date       string         `json:"date"` // YYYY-MM-DD
	Practices  []WirdPractice `json:"practices"`
	Notes      string         `json:"notes"`
	SourceType string         `json:"sourceType,omitempty"`
	SourceId   *string        `json:"sourceId,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
)

type ConvoMessage struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

const (
	ReflectionTypeText  = "text"
	ReflectionTypeAudio = "audio"
)

type Reflection struct {
	Id              string         `json:"id"`
	UserId          string         `json:"userId"`
	Type            string         `json:"type"`
	OriginalContent string         `json:"originalContent"`
	Transcription   *string        `json:"transcription,omitempty"`
	Messages        []ConvoMessage `json:"messages"`
	ActionItems     []string       `json:"actionItems"`
	Insights        []Insight      `json:"insights"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}
