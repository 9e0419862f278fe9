package db

import (
	"encoding/json"
	"log"
	"time"

	"muhasab-server/shared"

	"github.com/jmoiron/sqlx/types"
)

// The models below should only be used server-side.
// Models returned to the client have a ToApi() method to convert to the
// corresponding shared model, so server-only columns (password hashes,
// google ids) don't leak.

type User struct {
	Id            string     `db:"id"`
	Name          string     `db:"name"`
	Email         string     `db:"email"`
	PasswordHash  *string    `db:"password_hash"`
	GoogleId      *string    `db:"google_id"`
	EmailVerified bool       `db:"email_verified"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (user *User) ToApi() *shared.User {
	return &shared.User{
		Id:            user.Id,
		Name:          user.Name,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
	}
}

type Profile struct {
	Id                   string    `db:"id"`
	UserId               string    `db:"user_id"`
	InputMethod          string    `db:"input_method"`
	ReflectionFrequency  string    `db:"reflection_frequency"`
	Language             string    `db:"language"`
	AllowPersonalization bool      `db:"allow_personalization"`
	LocalOnly            bool      `db:"local_only"`
	EncryptedProfileData *string   `db:"encrypted_profile_data"`
	EncryptionIv         *string   `db:"encryption_iv"`
	CreatedAt            time.Time `db:"created_at"`
	UpdatedAt            time.Time `db:"updated_at"`
}

func (profile *Profile) ToApi() *shared.Profile {
	return &shared.Profile{
		Id:                   profile.Id,
		UserId:               profile.UserId,
		InputMethod:          profile.InputMethod,
		ReflectionFrequency:  profile.ReflectionFrequency,
		Language:             profile.Language,
		AllowPersonalization: profile.AllowPersonalization,
		LocalOnly:            profile.LocalOnly,
		EncryptedProfileData: profile.EncryptedProfileData,
		EncryptionIv:         profile.EncryptionIv,
		CreatedAt:            profile.CreatedAt,
		UpdatedAt:            profile.UpdatedAt,
	}
}

type Halaqa struct {
	Id              string         `db:"id"`
	UserId          string         `db:"user_id"`
	Title           string         `db:"title"`
	Speaker         string         `db:"speaker"`
	Topic           string         `db:"topic"`
	Date            time.Time      `db:"date"`
	KeyReflection   string         `db:"key_reflection"`
	Impact          string         `db:"impact"`
	ActionItems     types.JSONText `db:"action_items"`
	WirdSuggestions types.JSONText `db:"wird_suggestions"`
	Insights        types.JSONText `db:"insights"`
	ArchivedAt      *time.Time     `db:"archived_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (halaqa *Halaqa) ToApi() *shared.Halaqa {
	res := &shared.Halaqa{
		Id:              halaqa.Id,
		UserId:          halaqa.UserId,
		Title:           halaqa.Title,
		Speaker:         halaqa.Speaker,
		Topic:           halaqa.Topic,
		Date:            halaqa.Date,
		KeyReflection:   halaqa.KeyReflection,
		Impact:          halaqa.Impact,
		ActionItems:     []shared.ActionItem{},
		WirdSuggestions: []shared.WirdSuggestion{},
		Insights:        []shared.Insight{},
		CreatedAt:       halaqa.CreatedAt,
		UpdatedAt:       halaqa.UpdatedAt,
	}

	unmarshalJSONColumn(halaqa.ActionItems, &res.ActionItems, "halaqa action_items")
	unmarshalJSONColumn(halaqa.WirdSuggestions, &res.WirdSuggestions, "halaqa wird_suggestions")
	unmarshalJSONColumn(halaqa.Insights, &res.Insights, "halaqa insights")

	return res
}

type WirdEntry struct {
	Id         string         `db:"id"`
	UserId     string         `db:"user_id"`
	EntryDate  time.Time      `db:"entry_date"`
	Practices  types.JSONText `db:"practices"`
	Notes      string         `db:"notes"`
	SourceType string         `db:"source_type"`
	SourceId   *string        `db:"source_id"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (entry *WirdEntry) ToApi() *shared.WirdEntry {
	res := &shared.WirdEntry{
		Id:         entry.Id,
		UserId:     entry.UserId,
		Date:       entry.EntryDate.Format("2006-01-02"),
		Practices:  []shared.WirdPractice{},
		Notes:      entry.Notes,
		SourceType: entry.SourceType,
		SourceId:   entry.SourceId,
		CreatedAt:  entry.CreatedAt,
		UpdatedAt:  entry.UpdatedAt,
	}

	unmarshalJSONColumn(entry.Practices, &res.Practices, "wird practices")

	return res
}

type Reflection struct {
	Id              string         `db:"id"`
	UserId          string         `db:"user_id"`
	Type            string         `db:"type"`
	OriginalContent string         `db:"original_content"`
	Transcription   *string        `db:"transcription"`
	Messages        types.JSONText `db:"messages"`
	ActionItems     types.JSONText `db:"action_items"`
	Insights        types.JSONText `db:"insights"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (reflection *Reflection) ToApi() *shared.Reflection {
	res := &shared.Reflection{
		Id:              reflection.Id,
		UserId:          reflection.UserId,
		Type:            reflection.Type,
		OriginalContent: reflection.OriginalContent,
		Transcription:   reflection.Transcription,
		Messages:        []shared.ConvoMessage{},
		ActionItems:     []string{},
		Insights:        []shared.Insight{},
		CreatedAt:       reflection.CreatedAt,
		UpdatedAt:       reflection.UpdatedAt,
	}

	unmarshalJSONColumn(reflection.Messages, &res.Messages, "reflection messages")
	unmarshalJSONColumn(reflection.ActionItems, &res.ActionItems, "reflection action_items")
	unmarshalJSONColumn(reflection.Insights, &res.Insights, "reflection insights")

	return res
}

func unmarshalJSONColumn(col types.JSONText, dest interface{}, label string) {
	if len(col) == 0 {
		return
	}
	if err := json.Unmarshal(col, dest); err != nil {
		log.Printf("error unmarshalling %s column: %v\n", label, err)
	}
}
