package db

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// email verifications expire in 5 minutes
const emailVerificationExpirationMinutes = 5

func HashPin(pin string) string {
	pinHashBytes := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(pinHashBytes[:])
}

func CreateEmailVerification(email, userId, pinHash string) error {
	_, err := Conn.Exec("INSERT INTO email_verifications (email, user_id, pin_hash) VALUES ($1, $2, $3)", email, userId, pinHash)

	if err != nil {
		return fmt.Errorf("error creating email verification: %v", err)
	}

	return nil
}

func ValidateEmailVerification(email, pin string) (id string, err error) {
	pinHash := HashPin(pin)

	var verifiedAt *time.Time

	query := `SELECT id, verified_at
              FROM email_verifications
              WHERE pin_hash = $1
              AND email = $2
              AND created_at > $3
              ORDER BY created_at DESC
              LIMIT 1`

	err = Conn.QueryRow(query, pinHash, email, time.Now().Add(-emailVerificationExpirationMinutes*time.Minute)).Scan(&id, &verifiedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", errors.New("invalid or expired pin")
		}
		return "", fmt.Errorf("error validating email verification: %v", err)
	}

	if verifiedAt != nil {
		return "", errors.New("pin already verified")
	}

	return id, nil
}

func MarkEmailVerificationUsed(id string, tx *sql.Tx) error {
	_, err := tx.Exec("UPDATE email_verifications SET verified_at = now() WHERE id = $1", id)

	if err != nil {
		return fmt.Errorf("error marking email verification used: %v", err)
	}

	return nil
}
