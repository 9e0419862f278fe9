package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"muhasab-server/db"
	"muhasab-server/email"
	"muhasab-server/shared"
)

func CreateEmailVerificationHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for CreateEmailVerificationHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	if auth.User.EmailVerified {
		http.Error(w, "email is already verified", http.StatusConflict)
		return
	}

	b, err := shared.GetRandomAlphanumeric(6)
	if err != nil {
		log.Printf("Error generating random pin: %v\n", err)
		http.Error(w, "Error generating random pin: "+err.Error(), http.StatusInternalServerError)
		return
	}
	pin := strings.ToUpper(string(b))

	err = db.CreateEmailVerification(auth.User.Email, auth.UserId, db.HashPin(pin))
	if err != nil {
		log.Printf("Error creating email verification: %v\n", err)
		http.Error(w, "Error creating email verification: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = email.SendVerificationEmail(auth.User.Email, pin)
	if err != nil {
		log.Printf("Error sending verification email: %v\n", err)
		http.Error(w, "Error sending verification email: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type verifyEmailRequest struct {
	Pin string `json:"pin"`
}

func VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for VerifyEmailHandler")

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

	var requestBody verifyEmailRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	verificationId, err := db.ValidateEmailVerification(auth.User.Email, strings.ToUpper(requestBody.Pin))
	if err != nil {
		log.Printf("Error validating email verification: %v\n", err)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidCredentials,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid or expired pin",
		})
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

	err = db.MarkEmailVerificationUsed(verificationId, tx)
	if err != nil {
		log.Printf("Error marking verification used: %v\n", err)
		http.Error(w, "Error marking verification used: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = db.MarkEmailVerified(auth.UserId, tx)
	if err != nil {
		log.Printf("Error marking email verified: %v\n", err)
		http.Error(w, "Error marking email verified: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = tx.Commit()
	if err != nil {
		log.Printf("Error committing transaction: %v\n", err)
		http.Error(w, "Error committing transaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	user, err := db.GetUser(auth.UserId)
	if err != nil || user == nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user", http.StatusInternalServerError)
		return
	}

	writeJson(w, user.ToApi())
}
