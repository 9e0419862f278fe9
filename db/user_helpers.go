package db

import (
	"database/sql"
	"fmt"
	"strings"
)

func CreateUser(user *User, tx *sql.Tx) error {
	query := `INSERT INTO users (name, email, password_hash, google_id, email_verified) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`

	err := tx.QueryRow(query, user.Name, strings.ToLower(user.Email), user.PasswordHash, user.GoogleId, user.EmailVerified).Scan(&user.Id, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("error creating user: %v", err)
	}

	return nil
}

func GetUser(userId string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL", userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user: %v", err)
	}

	return &user, nil
}

func GetUserByEmail(email string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL", strings.ToLower(email))

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user by email: %v", err)
	}

	return &user, nil
}

func GetUserByGoogleId(googleId string) (*User, error) {
	var user User
	err := Conn.Get(&user, "SELECT * FROM users WHERE google_id = $1 AND deleted_at IS NULL", googleId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting user by google id: %v", err)
	}

	return &user, nil
}

func SetUserGoogleId(userId, googleId string, tx *sql.Tx) error {
	_, err := tx.Exec("UPDATE users SET google_id = $1, email_verified = TRUE, updated_at = now() WHERE id = $2", googleId, userId)

	if err != nil {
		return fmt.Errorf("error setting user google id: %v", err)
	}

	return nil
}

func MarkEmailVerified(userId string, tx *sql.Tx) error {
	_, err := tx.Exec("UPDATE users SET email_verified = TRUE, updated_at = now() WHERE id = $1", userId)

	if err != nil {
		return fmt.Errorf("error marking email verified: %v", err)
	}

	return nil
}
