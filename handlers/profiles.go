package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"muhasab-server/db"
	"muhasab-server/shared"
)

func GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GetProfileHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	profile, err := db.GetProfile(auth.UserId)
	if err != nil {
		log.Printf("Error getting profile: %v\n", err)
		http.Error(w, "Error getting profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if profile == nil {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeNotFound,
			Status: http.StatusNotFound,
			Msg:    "No profile yet",
		})
		return
	}

	writeJson(w, profile.ToApi())
}

func UpsertProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for UpsertProfileHandler")

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

	var requestBody shared.CreateProfileRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	profile := &db.Profile{
		UserId:               auth.UserId,
		InputMethod:          defaultString(requestBody.InputMethod, "text"),
		ReflectionFrequency:  defaultString(requestBody.ReflectionFrequency, "daily"),
		Language:             defaultString(requestBody.Language, "en"),
		AllowPersonalization: requestBody.AllowPersonalization,
		LocalOnly:            requestBody.LocalOnly,
		EncryptedProfileData: requestBody.EncryptedProfileData,
		EncryptionIv:         requestBody.EncryptionIv,
	}

	err = db.UpsertProfile(profile)
	if err != nil {
		log.Printf("Error upserting profile: %v\n", err)
		http.Error(w, "Error upserting profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, profile.ToApi())
}

func DeleteProfileHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for DeleteProfileHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	err := db.DeleteProfile(auth.UserId)
	if err != nil {
		log.Printf("Error deleting profile: %v\n", err)
		http.Error(w, "Error deleting profile: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
