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

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for RegisterHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.CreateAccountRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	requestBody.Email = strings.TrimSpace(requestBody.Email)
	requestBody.Name = strings.TrimSpace(requestBody.Name)

	if requestBody.Email == "" || !strings.Contains(requestBody.Email, "@") {
		http.Error(w, "valid email field is required", http.StatusBadRequest)
		return
	}

	if requestBody.Name == "" {
		http.Error(w, "name field is required", http.StatusBadRequest)
		return
	}

	if len(requestBody.Password) < minPasswordLength {
		http.Error(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hashBytes, err := bcrypt.GenerateFromPassword([]byte(requestBody.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Error hashing password: %v\n", err)
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	hash := string(hashBytes)

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

	user := &db.User{
		Name:         requestBody.Name,
		Email:        requestBody.Email,
		PasswordHash: &hash,
	}
	err = db.CreateUser(user, tx)

	if err != nil {
		if err == db.ErrEmailTaken {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeEmailTaken,
				Status: http.StatusConflict,
				Msg:    "An account with this email already exists",
			})
			return
		}

		log.Printf("Error creating user: %v\n", err)
		http.Error(w, "Error creating user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	token, err := issueToken(user.Id)
	if err != nil {
		log.Printf("Error creating auth token: %v\n", err)
		http.Error(w, "Error creating auth token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	err = tx.Commit()
	if err != nil {
		log.Printf("Error committing transaction: %v\n", err)
		http.Error(w, "Error committing transaction: "+err.Error(), http.StatusInternalServerError)
		return
	}

	go func() {
		if err := email.SendWelcomeEmail(user.Email, user.Name); err != nil {
			log.Printf("Error sending welcome email: %v\n", err)
		}
	}()

	writeJson(w, shared.SessionResponse{
		Token: token,
		User:  user.ToApi(),
	})

	log.Println("Successfully created account")
}

func SignInHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for SignInHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.SignInRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	user, err := db.GetUserByEmail(requestBody.Email)
	if err != nil {
		log.Printf("Error getting user: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// compare against a constant dummy hash when the user doesn't exist so
	// response timing doesn't reveal which emails are registered
	if user == nil || user.PasswordHash == nil {
		bcrypt.CompareHashAndPassword([]byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"), []byte(requestBody.Password))
		writeInvalidCredentials(w)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(requestBody.Password)); err != nil {
		writeInvalidCredentials(w)
		return
	}

	token, err := issueToken(user.Id)
	if err != nil {
		log.Printf("Error creating auth token: %v\n", err)
		http.Error(w, "Error creating auth token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.SessionResponse{
		Token: token,
		User:  user.ToApi(),
	})
}

func writeInvalidCredentials(w http.ResponseWriter) {
	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeInvalidCredentials,
		Status: http.StatusUnauthorized,
		Msg:    "Invalid email or password",
	})
}

func GoogleSignInHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for GoogleSignInHandler")

	body, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading request body: %v\n", err)
		http.Error(w, "Error reading request body", http.StatusInternalServerError)
		return
	}
	defer r.Body.Close()

	var requestBody shared.GoogleSignInRequest
	if err := json.Unmarshal(body, &requestBody); err != nil {
		log.Printf("Error parsing request body: %v\n", err)
		http.Error(w, "Error parsing request body", http.StatusBadRequest)
		return
	}

	if requestBody.IdToken == "" {
		http.Error(w, "idToken field is required", http.StatusBadRequest)
		return
	}

	info, err := verifyGoogleIdToken(requestBody.IdToken)
	if err != nil {
		log.Printf("Error verifying google id token: %v\n", err)
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeInvalidCredentials,
			Status: http.StatusUnauthorized,
			Msg:    "Invalid Google token",
		})
		return
	}

	user, err := db.GetUserByGoogleId(info.Sub)
	if err != nil {
		log.Printf("Error getting user by google id: %v\n", err)
		http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if user == nil {
		// link to an existing email account, or create a fresh one
		user, err = db.GetUserByEmail(info.Email)
		if err != nil {
			log.Printf("Error getting user by email: %v\n", err)
			http.Error(w, "Error getting user: "+err.Error(), http.StatusInternalServerError)
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

		if user != nil {
			err = db.SetUserGoogleId(user.Id, info.Sub, tx)
			if err != nil {
				log.Printf("Error linking google id: %v\n", err)
				http.Error(w, "Error linking google account: "+err.Error(), http.StatusInternalServerError)
				return
			}
		} else {
			name := info.Name
			if name == "" {
				name = info.Email
			}
			googleId := info.Sub
			user = &db.User{
				Name:          name,
				Email:         info.Email,
				GoogleId:      &googleId,
				EmailVerified: info.EmailVerified == "true",
			}
			err = db.CreateUser(user, tx)
			if err != nil {
				log.Printf("Error creating user: %v\n", err)
				http.Error(w, "Error creating user: "+err.Error(), http.StatusInternalServerError)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			log.Printf("Error committing transaction: %v\n", err)
			http.Error(w, "Error committing transaction: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	token, err := issueToken(user.Id)
	if err != nil {
		log.Printf("Error creating auth token: %v\n", err)
		http.Error(w, "Error creating auth token: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJson(w, shared.SessionResponse{
		Token: token,
		User:  user.ToApi(),
	})
}

func ValidateHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for ValidateHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	writeJson(w, auth.User.ToApi())
}
