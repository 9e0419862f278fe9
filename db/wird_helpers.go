package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"muhasab-server/shared"
)

func CreateWirdEntry(entry *WirdEntry, tx *sql.Tx) error {
	query := `INSERT INTO wird_entries (user_id, entry_date, practices, notes, source_type, source_id)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, created_at, updated_at`

	err := tx.QueryRow(query, entry.UserId, entry.EntryDate, entry.Practices, entry.Notes, entry.SourceType, entry.SourceId).Scan(&entry.Id, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateWirdEntry
		}
		return fmt.Errorf("error creating wird entry: %v", err)
	}

	return nil
}

func GetWirdEntry(entryId, userId string) (*WirdEntry, error) {
	var entry WirdEntry
	err := Conn.Get(&entry, "SELECT * FROM wird_entries WHERE id = $1 AND user_id = $2", entryId, userId)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting wird entry: %v", err)
	}

	return &entry, nil
}

func GetWirdEntryByDate(userId string, date time.Time) (*WirdEntry, error) {
	var entry WirdEntry
	err := Conn.Get(&entry, "SELECT * FROM wird_entries WHERE user_id = $1 AND entry_date = $2", userId, date)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error getting wird entry by date: %v", err)
	}

	return &entry, nil
}

func ListWirdEntries(userId string) ([]*WirdEntry, error) {
	var entries []*WirdEntry
	err := Conn.Select(&entries, "SELECT * FROM wird_entries WHERE user_id = $1 ORDER BY entry_date DESC", userId)

	if err != nil {
		return nil, fmt.Errorf("error listing wird entries: %v", err)
	}

	return entries, nil
}

func SetWirdPractices(entryId string, practices []shared.WirdPractice) error {
	bytes, err := json.Marshal(practices)
	if err != nil {
		return fmt.Errorf("error marshalling practices: %v", err)
	}

	_, err = Conn.Exec("UPDATE wird_entries SET practices = $1, updated_at = now() WHERE id = $2", bytes, entryId)

	if err != nil {
		return fmt.Errorf("error storing practices: %v", err)
	}

	return nil
}

func SetWirdNotes(entryId, notes string) error {
	_, err := Conn.Exec("UPDATE wird_entries SET notes = $1, updated_at = now() WHERE id = $2", notes, entryId)

	if err != nil {
		return fmt.Errorf("error storing wird notes: %v", err)
	}

	return nil
}
