package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"muhasab-server/shared"
)

func CreateHalaqa(halaqa *Halaqa, tx *sql.Tx) error {
	query := `INSERT INTO halaqas (user_id, title, speaker, topic, date, key_reflection, impact)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at, updated_at`

	err := tx.QueryRow(query, halaqa.UserId, halaqa.Title, halaqa.Speaker, halaqa.Topic, halaqa.Date, halaqa.KeyReflection, halaqa.Impact).Scan(&halaqa.Id, &halaqa.CreatedAt, &halaqa.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error creating halaqa: %v", err)
	}

	return nil
}

func GetHalaqa(halaqaId, userId string) (*Halaqa, error) {
	var halaqa Halaqa
	err := Conn.Get(&halaqa, "SELECT * FROM halaqas WHERE id = $1 AND user_id = $2 AND archived_at IS NULL", halaqaId, userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting halaqa: %v", err)
	}

	return &halaqa, nil
}

func ListHalaqas(userId string) ([]*Halaqa, error) {
	var halaqas []*Halaqa
	err := Conn.Select(&halaqas, "SELECT * FROM halaqas WHERE user_id = $1 AND archived_at IS NULL ORDER BY date DESC, created_at DESC", userId)

	if err != nil {
		return nil, fmt.Errorf("error listing halaqas: %v", err)
	}

	return halaqas, nil
}

func UpdateHalaqa(halaqaId, userId string, req shared.UpdateHalaqaRequest, date time.Time) error {
	query := `UPDATE halaqas SET title = $1, speaker = $2, topic = $3, date = $4, key_reflection = $5, impact = $6, updated_at = now()
	WHERE id = $7 AND user_id = $8 AND archived_at IS NULL`

	res, err := Conn.Exec(query, req.Title, req.Speaker, req.Topic, date, req.KeyReflection, req.Impact, halaqaId, userId)

	if err != nil {
		return fmt.Errorf("error updating halaqa: %v", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func ArchiveHalaqa(halaqaId, userId string) error {
	res, err := Conn.Exec("UPDATE halaqas SET archived_at = now(), updated_at = now() WHERE id = $1 AND user_id = $2 AND archived_at IS NULL", halaqaId, userId)

	if err != nil {
		return fmt.Errorf("error archiving halaqa: %v", err)
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func SetHalaqaActionItems(halaqaId string, actionItems []shared.ActionItem) error {
	bytes, err := json.Marshal(actionItems)
	if err != nil {
		return fmt.Errorf("error marshalling action items: %v", err)
	}

	_, err = Conn.Exec("UPDATE halaqas SET action_items = $1, updated_at = now() WHERE id = $2", bytes, halaqaId)

	if err != nil {
		return fmt.Errorf("error storing action items: %v", err)
	}

	return nil
}

func SetHalaqaWirdSuggestions(halaqaId string, suggestions []shared.WirdSuggestion) error {
	bytes, err := json.Marshal(suggestions)
	if err != nil {
		return fmt.Errorf("error marshalling wird suggestions: %v", err)
	}

	_, err = Conn.Exec("UPDATE halaqas SET wird_suggestions = $1, updated_at = now() WHERE id = $2", bytes, halaqaId)

	if err != nil {
		return fmt.Errorf("error storing wird suggestions: %v", err)
	}

	return nil
}

func SetHalaqaInsights(halaqaId string, insights []shared.Insight) error {
	bytes, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("error marshalling insights: %v", err)
	}

	_, err = Conn.Exec("UPDATE halaqas SET insights = $1, updated_at = now() WHERE id = $2", bytes, halaqaId)

	if err != nil {
		return fmt.Errorf("error storing insights: %v", err)
	}

	return nil
}
