package main

import (
	"muhasab-server/setup"

	"github.com/gorilla/mux"
)

func main() {
	setup.MustInitDb()
	transcriber := setup.InitTranscription()

	r := mux.NewRouter()
	setup.StartServer(r, transcriber)
}
