package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"muhasab-server/db"
	"muhasab-server/model"
	"muhasab-server/shared"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx/types"
)

func CreateReflectionHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateReflectionHandler")

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

	var requestBody shared.CreateReflectionRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	if requestBody.Content == "" {
		log.Println("Received empty content field")
		http.Error(w, "content field is required", http.StatusBadRequest)
		return
	}

	reflectionType := requestBody.Type
	if reflectionType != shared.ReflectionTypeAudio {
		reflectionType = shared.ReflectionTypeText
	}

	res, err := model.Reflect(r.Context(), requestBody.Content)
	if err != nil {
		log.Printf("Error generating reflection response: %v\n", err)
		writeModelError(w)
		return
	}

	now := time.Now()
	messages := []shared.ConvoMessage{
		{Role: shared.MessageRoleUser, Content: requestBody.Content, CreatedAt: now},
		{Role: shared.MessageRoleAssistant, Content: assistantMessageContent(res), CreatedAt: now},
	}

	messagesJson, err := json.Marshal(messages)
	if err != nil {
		log.Printf("Error marshalling messages: %v\n", err)
		http.Error(w, "Error marshalling messages", http.StatusInternalServerError)
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

	reflection := &db.Reflection{
		UserId:          auth.UserId,
		Type:            reflectionType,
		OriginalContent: requestBody.Content,
		Transcription:   requestBody.Transcription,
		Messages:        types.JSONText(messagesJson),
	}
	err = db.CreateReflection(reflection, tx)

	if err != nil {
		log.Printf("Error creating reflection: %v\n", err)
		http.Error(w, "Error creating reflection: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = tx.Commit()
	if err != nil {
		log.Printf("Error committing transaction: %v\n", err)
		http.Error(w, "Error committing transaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.CreateReflectionResponse{
		Id:            reflection.Id,
		Understanding: res.Understanding,
		Questions:     res.Questions,
	})
}

func GetReflectionHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetReflectionHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	reflection := getOwnedReflection(w, r, auth.UserId)
	if reflection == nil {
		return
	}

	writeJson(w, reflection.ToApi())
}

func RespondReflectionHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for RespondReflectionHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	reflection := getOwnedReflection(w, r, auth.UserId)
	if reflection == nil {
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.RespondReflectionRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	if requestBody.Content == "" {
		log.Println("Received empty content field")
		http.Error(w, "content field is required", http.StatusBadRequest)
		return
	}

	api := reflection.ToApi()
	messages := append(api.Messages, shared.ConvoMessage{
		Role:      shared.MessageRoleUser,
		Content:   requestBody.Content,
		CreatedAt: time.Now(),
	})

	res, err := model.Respond(r.Context(), messages)
	if err != nil {
		log.Printf("Error generating reflection response: %v\n", err)
		writeModelError(w)
		return
	}

	messages = append(messages, shared.ConvoMessage{
		Role:      shared.MessageRoleAssistant,
		Content:   assistantMessageContent(res),
		CreatedAt: time.Now(),
	})

	if err := db.SetReflectionMessages(reflection.Id, messages); err != nil {
		log.Printf("Error storing reflection messages: %v\n", err)
		http.Error(w, "Error storing reflection messages: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.RespondReflectionResponse{
		Understanding: res.Understanding,
		Questions:     res.Questions,
	})
}

func ReflectionActionItemsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ReflectionActionItemsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	reflection := getOwnedReflection(w, r, auth.UserId)
	if reflection == nil {
		return
	}

	actionItems, err := model.ReflectionActionItems(r.Context(), reflection.ToApi().Messages)
	if err != nil {
		log.Printf("Error generating action items: %v\n", err)
		writeModelError(w)
		return
	}

	if err := db.SetReflectionActionItems(reflection.Id, actionItems); err != nil {
		log.Printf("Error storing action items: %v\n", err)
		http.Error(w, "Error storing action items: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.ActionItemsResponse{ActionItems: actionItems})
}

func ReflectionInsightsHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ReflectionInsightsHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	reflection := getOwnedReflection(w, r, auth.UserId)
	if reflection == nil {
		return
	}

	insights, err := model.ReflectionInsights(r.Context(), reflection.ToApi().Messages)
	if err != nil {
		log.Printf("Error generating insights: %v\n", err)
		writeModelError(w)
		return
	}

	if err := db.SetReflectionInsights(reflection.Id, insights); err != nil {
		log.Printf("Error storing insights: %v\n", err)
		http.Error(w, "Error storing insights: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.InsightsResponse{Insights: insights})
}

func getOwnedReflection(w http.ResponseWriter, r *http.Request, userId string) *db.Reflection {
	reflectionId := mux.Vars(r)["reflectionId"]

	reflection, err := db.GetReflection(reflectionId, userId)
	if err != nil {
		log.Printf("Error getting reflection: %v\n", err)
		http.Error(w, "Error getting reflection: "+err.Error(), http.StatusInternalServerError)
		return nil
	}

	if reflection == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "Reflection not found",
		})
		return nil
	}

	return reflection
}

// the assistant turn is stored as the serialized response so the
// conversation can be replayed to the model with full context
func assistantMessageContent(res *model.ReflectionResponse) string {
	bytes, err := json.Marshal(res)
	if err != nil {
		return res.Understanding
	}
	return string(bytes)
}
