package model

import (
	"os"

	"github.com/sashabaranov/go-openai"
)

var Client *openai.Client

func init() {
	Client = openai.NewClient(os.Getenv("OPENAI_API_KEY"))
}

// Configured reports whether an API key is set. Without a key, model
// functions return canned development responses instead of calling out.
func Configured() bool {
	return os.Getenv("OPENAI_API_KEY") != ""
}

func ModelName() string {
	if name := os.Getenv("OPENAI_MODEL"); name != "" {
		return name
	}
	return openai.GPT4o
}
