package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"muhasab-server/db"
	"muhasab-server/shared"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx/types"
)

func CreateWirdHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateWirdHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.CreateWirdRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	date, err := parseDate(requestBody.Date)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	existing, err := db.GetWirdEntryByDate(auth.UserId, date)
	if err != nil {
		log.Printf("Error checking existing wird entry: %v\n", err)
		http.Error(w, "Error checking existing wird entry: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if existing != nil {
		writeDuplicateWird(w)
		return
	}

	practices := normalizePractices(requestBody.Practices)

	practicesJson, err := json.Marshal(practices)
	if err != nil {
		log.Printf("Error marshalling practices: %v\n", err)
		http.Error(w, "Error marshalling practices", http.StatusInternalServerError)
		return
	}

	// start a transaction
	tx, err := db.Conn.Begin()
	if err != nil {
		log.Printf("Error starting transaction: %v\n", err)
		http.Error(w, "Error starting transaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// Ensure that rollback is attempted in case of failure
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Printf("transaction rollback error: %v\n", rbErr)
			} else {
				log.Println("transaction rolled back")
			}
		}
	}()

	entry := &db.WirdEntry{
		UserId:     auth.UserId,
		EntryDate:  date,
		Practices:  types.JSONText(practicesJson),
		Notes:      requestBody.Notes,
		SourceType: "manual",
	}
	err = db.CreateWirdEntry(entry, tx)

	if err != nil {
		// a concurrent create for the same date can slip past the
		// lookup above; the unique constraint catches it
		if err == db.ErrDuplicateWirdEntry {
			writeDuplicateWird(w)
			return
		}
		log.Printf("Error creating wird entry: %v\n", err)
		http.Error(w, "Error creating wird entry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = tx.Commit()
	if err != nil {
		log.Printf("Error committing transaction: %v\n", err)
		http.Error(w, "Error committing transaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, entry.ToApi())
}

func ListWirdsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListWirdsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	entries, err := db.ListWirdEntries(auth.UserId)
	if err != nil {
		log.Printf("Error listing wird entries: %v\n", err)
		http.Error(w, "Error listing wird entries: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiEntries := make([]*shared.WirdEntry, 0, len(entries))
	for _, entry := range entries {
		apiEntries = append(apiEntries, entry.ToApi())
	}

	writeJson(w, apiEntries)
}

func GetWirdHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetWirdHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	entry := getOwnedWird(w, r, auth.UserId)
	if entry == nil {
		return
	}

	writeJson(w, entry.ToApi())
}

func GetWirdByDateHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetWirdByDateHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	date, err := parseDate(mux.Vars(r)["date"])
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	entry, err := db.GetWirdEntryByDate(auth.UserId, date)
	if err != nil {
		log.Printf("Error getting wird entry by date: %v\n", err)
		http.Error(w, "Error getting wird entry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if entry == nil {
		writeWirdNotFound(w)
		return
	}

	writeJson(w, entry.ToApi())
}

func UpdateWirdHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateWirdHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	entry := getOwnedWird(w, r, auth.UserId)
	if entry == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.UpdateWirdRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	practices := normalizePractices(requestBody.Practices)

	if err := db.SetWirdPractices(entry.Id, practices); err != nil {
		log.Printf("Error updating practices: %v\n", err)
		http.Error(w, "Error updating practices: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if requestBody.Notes != nil {
		if err := db.SetWirdNotes(entry.Id, *requestBody.Notes); err != nil {
			log.Printf("Error updating notes: %v\n", err)
			http.Error(w, "Error updating notes: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	updated, err := db.GetWirdEntry(entry.Id, auth.UserId)
	if err != nil || updated == nil {
		log.Printf("Error getting updated wird entry: %v\n", err)
		http.Error(w, "Error getting updated wird entry", http.StatusInternalServerError)
		return
	}

	writeJson(w, updated.ToApi())
}

func UpdateWirdPracticeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateWirdPracticeHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	entry := getOwnedWird(w, r, auth.UserId)
	if entry == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.UpdateWirdPracticeRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	api := entry.ToApi()
	practices, ok := setPracticeProgress(api.Practices, requestBody.PracticeId, requestBody.Completed)
	if !ok {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Practice not found on this entry",
		})
		return
	}

	if err := db.SetWirdPractices(entry.Id, practices); err != nil {
		log.Printf("Error updating practices: %v\n", err)
		http.Error(w, "Error updating practices: "+err.Error(), http.StatusInternalServerError)
		return
	}

	api.Practices = practices
	writeJson(w, api)
}

func AddWirdSuggestionHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for AddWirdSuggestionHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.AddWirdSuggestionRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	date, err := parseDate(requestBody.Date)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if requestBody.Suggestion.Name == "" {
		http.Error(w, "suggestion name is required", http.StatusBadRequest)
		return
	}

	entry, err := db.GetWirdEntryByDate(auth.UserId, date)
	if err != nil {
		log.Printf("Error getting wird entry by date: %v\n", err)
		http.Error(w, "Error getting wird entry: "+err.Error(), http.StatusInternalServerError)
		return
	}

	practice := practiceFromSuggestion(requestBody.Suggestion)

	if entry == nil {
		practicesJson, err := json.Marshal([]shared.WirdPractice{practice})
		if err != nil {
			log.Printf("Error marshalling practices: %v\n", err)
			http.Error(w, "Error marshalling practices", http.StatusInternalServerError)
			return
		}

		tx, txErr := db.Conn.Begin()
		if txErr != nil {
			log.Printf("Error starting transaction: %v\n", txErr)
			http.Error(w, "Error starting transaction: "+txErr.Error(), http.StatusInternalServerError)
			return
		}

		defer func() {
			if err != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					log.Printf("transaction rollback error: %v\n", rbErr)
				} else {
					log.Println("transaction rolled back")
				}
			}
		}()

		sourceId := requestBody.Suggestion.Id
		newEntry := &db.WirdEntry{
			UserId:     auth.UserId,
			EntryDate:  date,
			Practices:  types.JSONText(practicesJson),
			SourceType: "suggestion",
		}
		if sourceId != "" {
			newEntry.SourceId = &sourceId
		}

		err = db.CreateWirdEntry(newEntry, tx)
		if err != nil {
			if err == db.ErrDuplicateWirdEntry {
				writeDuplicateWird(w)
				return
			}
			log.Printf("Error creating wird entry: %v\n", err)
			http.Error(w, "Error creating wird entry: "+err.Error(), http.StatusInternalServerError)
			return
		}

		err = tx.Commit()
		if err != nil {
			log.Printf("Error committing transaction: %v\n", err)
			http.Error(w, "Error committing transaction: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeJson(w, newEntry.ToApi())
		return
	}

	api := entry.ToApi()

	// the same suggestion shouldn't land on an entry twice
	if hasPracticeId(api.Practices, practice.Id) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeDuplicateWird,
			Status: http.StatusConflict,
			Msg:    "This suggestion was already added to the entry",
		})
		return
	}

	api.Practices = append(api.Practices, practice)

	if err := db.SetWirdPractices(entry.Id, api.Practices); err != nil {
		log.Printf("Error updating practices: %v\n", err)
		http.Error(w, "Error updating practices: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, api)
}

func getOwnedWird(w http.ResponseWriter, r *http.Request, userId string) *db.WirdEntry {
	entryId := mux.Vars(r)["wirdId"]

	entry, err := db.GetWirdEntry(entryId, userId)
	if err != nil {
		log.Printf("Error getting wird entry: %v\n", err)
		http.Error(w, "Error getting wird entry: "+err.Error(), http.StatusInternalServerError)
		return nil
	}

	if entry == nil {
		writeWirdNotFound(w)
		return nil
	}

	return entry
}

func writeWirdNotFound(w http.ResponseWriter) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeNotFound,
		Status: http.StatusNotFound,
		Msg:    "Wird entry not found",
	})
}

func writeDuplicateWird(w http.ResponseWriter) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeDuplicateWird,
		Status: http.StatusConflict,
		Msg:    "A wird entry for this date already exists",
	})
}

func hasPracticeId(practices []shared.WirdPractice, id string) bool {
	for _, practice := range practices {
		if practice.Id == id {
			return true
		}
	}
	return false
}

// normalizePractices fills in missing practice ids and derives the
// completion flag from progress against the target.
func normalizePractices(practices []shared.WirdPractice) []shared.WirdPractice {
	res := make([]shared.WirdPractice, 0, len(practices))
	for _, practice := range practices {
		if practice.Id == "" {
			practice.Id = uuid.New().String()
		}
		if practice.Target < 1 {
			practice.Target = 1
		}
		if practice.Completed < 0 {
			practice.Completed = 0
		}
		practice.IsCompleted = practice.Completed >= practice.Target
		res = append(res, practice)
	}
	return res
}

func setPracticeProgress(practices []shared.WirdPractice, practiceId string, completed int) ([]shared.WirdPractice, bool) {
	found := false
	for i := range practices {
		if practices[i].Id == practiceId {
			if completed < 0 {
				completed = 0
			}
			practices[i].Completed = completed
			practices[i].IsCompleted = completed >= practices[i].Target
			found = true
		}
	}
	return practices, found
}

func practiceFromSuggestion(suggestion shared.WirdSuggestion) shared.WirdPractice {
	id := suggestion.Id
	if id == "" {
		id = uuid.New().String()
	}

	target := suggestion.Target
	if target < 1 {
		target = 1
	}

	return shared.WirdPractice{
		Id:       id,
		Name:     suggestion.Name,
		Category: defaultString(suggestion.Category, "dhikr"),
		Target:   target,
		Unit:     defaultString(suggestion.Unit, "times"),
	}
}
