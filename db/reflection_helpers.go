package db

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"muhasab-server/shared"
)

func CreateReflection(reflection *Reflection, tx *sql.Tx) error {
	query := `INSERT INTO reflections (user_id, type, original_content, transcription, messages)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, created_at, updated_at`

	err := tx.QueryRow(query, reflection.UserId, reflection.Type, reflection.OriginalContent, reflection.Transcription, reflection.Messages).Scan(&reflection.Id, &reflection.CreatedAt, &reflection.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating reflection: %v", err)
	}

	return nil
}

func GetReflection(reflectionId, userId string) (*Reflection, error) {
	var reflection Reflection
	err := Conn.Get(&reflection, "SELECT * FROM reflections WHERE id = $1 AND user_id = $2", reflectionId, userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting reflection: %v", err)
	}

	return &reflection, nil
}

func SetReflectionMessages(reflectionId string, messages []shared.ConvoMessage) error {
	bytes, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("error marshalling messages: %v", err)
	}

	_, err = Conn.Exec("UPDATE reflections SET messages = $1, updated_at = now() WHERE id = $2", bytes, reflectionId)

	if err != nil {
		return fmt.Errorf("error storing reflection messages: %v", err)
	}

	return nil
}

func SetReflectionActionItems(reflectionId string, actionItems []string) error {
	bytes, err := json.Marshal(actionItems)
	if err != nil {
		return fmt.Errorf("error marshalling action items: %v", err)
	}

	_, err = Conn.Exec("UPDATE reflections SET action_items = $1, updated_at = now() WHERE id = $2", bytes, reflectionId)

	if err != nil {
		return fmt.Errorf("error storing reflection action items: %v", err)
	}

	return nil
}

func SetReflectionInsights(reflectionId string, insights []shared.Insight) error {
	bytes, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("error marshalling insights: %v", err)
	}

	_, err = Conn.Exec("UPDATE reflections SET insights = $1, updated_at = now() WHERE id = $2", bytes, reflectionId)

	if err != nil {
		return fmt.Errorf("error storing reflection insights: %v", err)
	}

	return nil
}
