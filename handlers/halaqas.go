package handlers

import (
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"muhasab-server/db"
	"muhasab-server/model"
	"muhasab-server/shared"

	"github.com/gorilla/mux"
)

func CreateHalaqaHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateHalaqaHandler")

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

	var requestBody shared.CreateHalaqaRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	if requestBody.Title == "" {
		log.Println("Received empty title field")
		http.Error(w, "title field is required", http.StatusBadRequest)
		return
	}

	date, err := parseDate(requestBody.Date)
	if err != nil {
		http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
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

	halaqa := &db.Halaqa{
		UserId:        auth.UserId,
		Title:         requestBody.Title,
		Speaker:       requestBody.Speaker,
		Topic:         requestBody.Topic,
		Date:          date,
		KeyReflection: requestBody.KeyReflection,
		Impact:        requestBody.Impact,
	}
	err = db.CreateHalaqa(halaqa, tx)

	if err != nil {
		log.Printf("Error creating halaqa: %v\n", err)
		http.Error(w, "Error creating halaqa: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = tx.Commit()
	if err != nil {
		log.Printf("Error committing transaction: %v\n", err)
		http.Error(w, "Error committing transaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, halaqa.ToApi())
}

func ListHalaqasHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ListHalaqasHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	halaqas, err := db.ListHalaqas(auth.UserId)
	if err != nil {
		log.Printf("Error listing halaqas: %v\n", err)
		http.Error(w, "Error listing halaqas: "+err.Error(), http.StatusInternalServerError)
		return
	}

	apiHalaqas := make([]*shared.Halaqa, 0, len(halaqas))
	for _, halaqa := range halaqas {
		apiHalaqas = append(apiHalaqas, halaqa.ToApi())
	}

	writeJson(w, apiHalaqas)
}

func GetHalaqaHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetHalaqaHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	halaqa := getOwnedHalaqa(w, r, auth.UserId)
	if halaqa == nil {
		return
	}

	writeJson(w, halaqa.ToApi())
}

func UpdateHalaqaHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpdateHalaqaHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	halaqaId := mux.Vars(r)["halaqaId"]

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.UpdateHalaqaRequest
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

	err = db.UpdateHalaqa(halaqaId, auth.UserId, requestBody, date)
	if err != nil {
		if err == sql.ErrNoRows {
			writeHalaqaNotFound(w)
			return
		}
		log.Printf("Error updating halaqa: %v\n", err)
		http.Error(w, "Error updating halaqa: "+err.Error(), http.StatusInternalServerError)
		return
	}

	halaqa, err := db.GetHalaqa(halaqaId, auth.UserId)
	if err != nil || halaqa == nil {
		log.Printf("Error getting updated halaqa: %v\n", err)
		http.Error(w, "Error getting updated halaqa", http.StatusInternalServerError)
		return
	}

	writeJson(w, halaqa.ToApi())
}

func ArchiveHalaqaHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ArchiveHalaqaHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	halaqaId := mux.Vars(r)["halaqaId"]

	err := db.ArchiveHalaqa(halaqaId, auth.UserId)
	if err != nil {
		if err == sql.ErrNoRows {
			writeHalaqaNotFound(w)
			return
		}
		log.Printf("Error archiving halaqa: %v\n", err)
		http.Error(w, "Error archiving halaqa: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func HalaqaActionsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for HalaqaActionsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	halaqa := getOwnedHalaqa(w, r, auth.UserId)
	if halaqa == nil {
		return
	}

	actionItems, err := model.HalaqaActionItems(r.Context(), halaqa.ToApi())
	if err != nil {
		log.Printf("Error generating action items: %v\n", err)
		writeModelError(w)
		return
	}

	if err := db.SetHalaqaActionItems(halaqa.Id, actionItems); err != nil {
		log.Printf("Error storing action items: %v\n", err)
		http.Error(w, "Error storing action items: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.HalaqaActionsResponse{ActionItems: actionItems})
}

func HalaqaWirdSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for HalaqaWirdSuggestionsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	halaqa := getOwnedHalaqa(w, r, auth.UserId)
	if halaqa == nil {
		return
	}

	suggestions, err := model.HalaqaWirdSuggestions(r.Context(), halaqa.ToApi())
	if err != nil {
		log.Printf("Error generating wird suggestions: %v\n", err)
		writeModelError(w)
		return
	}

	if err := db.SetHalaqaWirdSuggestions(halaqa.Id, suggestions); err != nil {
		log.Printf("Error storing wird suggestions: %v\n", err)
		http.Error(w, "Error storing wird suggestions: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.WirdSuggestionsResponse{WirdSuggestions: suggestions})
}

func HalaqaInsightsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for HalaqaInsightsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	halaqa := getOwnedHalaqa(w, r, auth.UserId)
	if halaqa == nil {
		return
	}

	// generate once, then serve the stored insights
	api := halaqa.ToApi()
	if len(api.Insights) == 0 {
		insights, err := model.HalaqaInsights(r.Context(), api)
		if err != nil {
			log.Printf("Error generating insights: %v\n", err)
			writeModelError(w)
			return
		}

		if err := db.SetHalaqaInsights(halaqa.Id, insights); err != nil {
			log.Printf("Error storing insights: %v\n", err)
			http.Error(w, "Error storing insights: "+err.Error(), http.StatusInternalServerError)
			return
		}

		api.Insights = insights
	}

	writeJson(w, shared.InsightsResponse{Insights: api.Insights})
}

func getOwnedHalaqa(w http.ResponseWriter, r *http.Request, userId string) *db.Halaqa {
	halaqaId := mux.Vars(r)["halaqaId"]

	halaqa, err := db.GetHalaqa(halaqaId, userId)
	if err != nil {
		log.Printf("Error getting halaqa: %v\n", err)
		http.Error(w, "Error getting halaqa: "+err.Error(), http.StatusInternalServerError)
		return nil
	}

	if halaqa == nil {
		writeHalaqaNotFound(w)
		return nil
	}

	return halaqa
}

func writeHalaqaNotFound(w http.ResponseWriter) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeNotFound,
		Status: http.StatusNotFound,
		Msg:    "Halaqa not found",
	})
}

func writeModelError(w http.ResponseWriter) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeModelFail,
		Status: http.StatusBadGateway,
		Msg:    "AI request failed",
	})
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
