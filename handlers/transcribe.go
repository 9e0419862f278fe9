package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"muhasab-server/shared"
	"muhasab-server/transcription"
)

const maxAudioBytes = 50 << 20 // 50 MB upload limit

var transcriber *transcription.Service

// RegisterTranscriber injects the transcription service at startup. When no
// service is registered (e.g. AWS credentials aren't configured), the
// endpoint returns 503.
func RegisterTranscriber(svc *transcription.Service) {
	transcriber = svc
}

func TranscribeHandler(w http.ResponseWriter, r *http.Request) {
	log.Println("Received request for TranscribeHandler")

	auth := authenticate(w, r)
	if auth == nil {
		return
	}

	if transcriber == nil {
		http.Error(w, "transcription is not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)

	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		log.Printf("Error parsing multipart form: %v\n", err)
		http.Error(w, "audio upload too large or malformed", multipartErrorStatus(err))
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		log.Printf("Error reading audio field: %v\n", err)
		http.Error(w, "audio field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	ext := strings.TrimPrefix(filepath.Ext(header.Filename), ".")

	if !transcription.SupportedFormat(ext) {
		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeUnsupportedAudio,
			Status: http.StatusBadRequest,
			Msg:    "Unsupported audio format: " + ext,
		})
		return
	}

	audio, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Error reading audio upload: %v\n", err)
		http.Error(w, "Error reading audio upload", http.StatusInternalServerError)
		return
	}

	text, err := transcriber.TranscribeAudio(r.Context(), audio, ext)
	if err != nil {
		log.Printf("Error transcribing audio: %v\n", err)

		var tErr *transcription.TranscriptionError
		if errors.As(err, &tErr) && tErr.Kind == transcription.ErrorKindUnsupportedFormat {
			writeApiError(w, shared.ApiError{
				Type:   shared.ApiErrorTypeUnsupportedAudio,
				Status: http.StatusBadRequest,
				Msg:    tErr.Msg,
			})
			return
		}

		writeApiError(w, shared.ApiError{
			Type:   shared.ApiErrorTypeTranscriptionFail,
			Status: http.StatusBadGateway,
			Msg:    "Transcription failed",
		})
		return
	}

	writeJson(w, shared.TranscribeResponse{Text: text})
}

// multipartErrorStatus distinguishes an over-limit upload from a body
// that couldn't be parsed.
func multipartErrorStatus(err error) int {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
