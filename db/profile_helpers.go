package db

import (
	"database/sql"
	"fmt"
)

func GetProfile(userId string) (*Profile, error) {
	var profile Profile
	err := Conn.Get(&profile, "SELECT * FROM profiles WHERE user_id = $1", userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting profile: %v", err)
	}

	return &profile, nil
}

// UpsertProfile creates the user's profile row if it doesn't exist yet,
// otherwise overwrites the preference fields.
func UpsertProfile(profile *Profile) error {
	query := `INSERT INTO profiles (user_id, input_method, reflection_frequency, language, allow_personalization, local_only, encrypted_profile_data, encryption_iv)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (user_id) DO UPDATE SET
		input_method = EXCLUDED.input_method,
		reflection_frequency = EXCLUDED.reflection_frequency,
		language = EXCLUDED.language,
		allow_personalization = EXCLUDED.allow_personalization,
		local_only = EXCLUDED.local_only,
		encrypted_profile_data = EXCLUDED.encrypted_profile_data,
		encryption_iv = EXCLUDED.encryption_iv,
		updated_at = now()
	RETURNING id, created_at, updated_at`

	err := Conn.QueryRow(query, profile.UserId, profile.InputMethod, profile.ReflectionFrequency, profile.Language, profile.AllowPersonalization, profile.LocalOnly, profile.EncryptedProfileData, profile.EncryptionIv).Scan(&profile.Id, &profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting profile: %v", err)
	}

	return nil
}

func DeleteProfile(userId string) error {
	_, err := Conn.Exec("DELETE FROM profiles WHERE user_id = $1", userId)

	if err != nil {
		return fmt.Errorf("error deleting profile: %v", err)
	}

	return nil
}
