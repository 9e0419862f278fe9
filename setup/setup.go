package setup

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"muhasab-server/db"
	"muhasab-server/handlers"
	"muhasab-server/routes"
	"muhasab-server/transcription"

	"github.com/gorilla/mux"
)

func MustInitDb() {
	err := db.Connect()
	if err != nil {
		log.Fatal("Error initializing database: ", err)
	}

	err = db.MigrationsUp()
	if err != nil {
		log.Fatal("Error running migrations: ", err)
	}
}

// InitTranscription wires up the AWS Transcribe service when a media bucket
// is configured. Without one the /api/transcribe endpoint returns 503.
func InitTranscription() *transcription.Service {
	if os.Getenv("TRANSCRIBE_BUCKET") == "" {
		log.Println("TRANSCRIBE_BUCKET not set - transcription disabled")
		return nil
	}

	svc, err := transcription.NewService()
	if err != nil {
		log.Fatal("Error initializing transcription service: ", err)
	}

	handlers.RegisterTranscriber(svc)
	return svc
}

func StartServer(r *mux.Router, transcriber *transcription.Service) {
	if os.Getenv("GOENV") == "development" {
		log.Println("In development mode.")
	}

	// Get externalPort from the environment variable or default to 8080
	externalPort := os.Getenv("PORT")
	if externalPort == "" {
		externalPort = "8080"
	}

	routes.AddRoutes(r)
	go startServer(externalPort, r)
	log.Println("Started server on port " + externalPort)

	sigTermChan := make(chan os.Signal, 1)
	signal.Notify(sigTermChan, syscall.SIGTERM)

	go func() {
		<-sigTermChan

		if transcriber != nil {
			for {
				l := transcriber.NumActiveJobs()
				if l == 0 {
					break
				}
				log.Printf("Waiting for %d active transcription jobs to finish...\n", l)
				time.Sleep(1 * time.Second)
			}
		}

		os.Exit(0)
	}()

	select {}
}

func startServer(port string, routes *mux.Router) {
	err := http.ListenAndServe(fmt.Sprintf(":%s", port), routes)
	if err != nil {
		log.Fatalf("Failed to start server on port %s: %v", port, err)
	}
}
