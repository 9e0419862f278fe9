package prompts

import (
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const SysInsights = "You are an AI assistant that surfaces gentle spiritual insights from a reflection conversation or halaqa notes. Each insight has a 'type' (one of: gratitude, growth, challenge, habit) and a 'content' sentence. Call the 'insights' function with a valid JSON object that includes the 'insights' key. Only call the 'insights' function in your response. Don't call any other function. Never issue religious rulings."

var InsightsFn = openai.FunctionDefinition{
	Name: "insights",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"insights": {
				Type:        jsonschema.Array,
				Description: "2-4 insights.",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"type": {
							Type:        jsonschema.String,
							Description: "One of: gratitude, growth, challenge, habit.",
						},
						"content": {
							Type:        jsonschema.String,
							Description: "The insight itself. One sentence.",
						},
					},
					Required: []string{"type", "content"},
				},
			},
		},
		Required: []string{"insights"},
	},
}
