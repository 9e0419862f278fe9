package routes

import (
	"fmt"
	"net/http"
	"os"

	"muhasab-server/handlers"

	"github.com/gorilla/mux"
)

func AddRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		// get version from version.txt
		bytes, err := os.ReadFile("version.txt")

		if err != nil {
			http.Error(w, "Error getting version", http.StatusInternalServerError)
			return
		}

		fmt.Fprint(w, string(bytes))
	})

	r.HandleFunc("/auth/register", handlers.RegisterHandler).Methods("POST")
	r.HandleFunc("/auth/login", handlers.SignInHandler).Methods("POST")
	r.HandleFunc("/auth/google", handlers.GoogleSignInHandler).Methods("POST")
	r.HandleFunc("/auth/validate", handlers.ValidateHandler).Methods("GET")
	r.HandleFunc("/auth/email_verifications", handlers.CreateEmailVerificationHandler).Methods("POST")
	r.HandleFunc("/auth/verify_email", handlers.VerifyEmailHandler).Methods("POST")

	r.HandleFunc("/api/profiles", handlers.GetProfileHandler).Methods("GET")
	r.HandleFunc("/api/profiles", handlers.UpsertProfileHandler).Methods("PUT")
	r.HandleFunc("/api/profiles", handlers.DeleteProfileHandler).Methods("DELETE")

	r.HandleFunc("/api/halaqas", handlers.CreateHalaqaHandler).Methods("POST")
	r.HandleFunc("/api/halaqas", handlers.ListHalaqasHandler).Methods("GET")
	r.HandleFunc("/api/halaqas/{halaqaId}", handlers.GetHalaqaHandler).Methods("GET")
	r.HandleFunc("/api/halaqas/{halaqaId}", handlers.UpdateHalaqaHandler).Methods("PUT")
	r.HandleFunc("/api/halaqas/{halaqaId}", handlers.ArchiveHalaqaHandler).Methods("DELETE")
	r.HandleFunc("/api/halaqas/{halaqaId}/actions", handlers.HalaqaActionsHandler).Methods("POST")
	r.HandleFunc("/api/halaqas/{halaqaId}/wird-suggestions", handlers.HalaqaWirdSuggestionsHandler).Methods("POST")
	r.HandleFunc("/api/halaqas/{halaqaId}/insights", handlers.HalaqaInsightsHandler).Methods("GET")

	r.HandleFunc("/api/wirds", handlers.CreateWirdHandler).Methods("POST")
	r.HandleFunc("/api/wirds", handlers.ListWirdsHandler).Methods("GET")
	r.HandleFunc("/api/wirds/add", handlers.AddWirdSuggestionHandler).Methods("POST")
	r.HandleFunc("/api/wirds/date/{date}", handlers.GetWirdByDateHandler).Methods("GET")
	r.HandleFunc("/api/wirds/{wirdId}", handlers.GetWirdHandler).Methods("GET")
	r.HandleFunc("/api/wirds/{wirdId}", handlers.UpdateWirdHandler).Methods("PUT")
	r.HandleFunc("/api/wirds/{wirdId}/practices", handlers.UpdateWirdPracticeHandler).Methods("PATCH")

	r.HandleFunc("/api/reflection", handlers.CreateReflectionHandler).Methods("POST")
	r.HandleFunc("/api/reflection/{reflectionId}", handlers.GetReflectionHandler).Methods("GET")
	r.HandleFunc("/api/reflection/{reflectionId}/respond", handlers.RespondReflectionHandler).Methods("POST")
	r.HandleFunc("/api/reflection/{reflectionId}/action-items", handlers.ReflectionActionItemsHandler).Methods("POST")
	r.HandleFunc("/api/reflection/{reflectionId}/insights", handlers.ReflectionInsightsHandler).Methods("POST")

	r.HandleFunc("/api/transcribe", handlers.TranscribeHandler).Methods("POST")
}
