package prompts

import (
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const SysActionItems = "You are an AI assistant that distills a spiritual reflection conversation into a short list of concrete, achievable action items. Each item should be a single sentence the user can act on this week. Call the 'actionItems' function with a valid JSON object that includes the 'actionItems' key. Only call the 'actionItems' function in your response. Don't call any other function."

var ActionItemsFn = openai.FunctionDefinition{
	Name: "actionItems",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"actionItems": {
				Type:        jsonschema.Array,
				Description: "3-5 concrete action items. One sentence each.",
				Items: &jsonschema.Definition{
					Type: jsonschema.String,
				},
			},
		},
		Required: []string{"actionItems"},
	},
}

const SysHalaqaActions = "You are an AI assistant that turns notes from an Islamic study circle (halaqa) into concrete action items. Base the items only on what the notes say. Call the 'halaqaActions' function with a valid JSON object that includes the 'actionItems' key, an array of objects with a 'description' key. Only call the 'halaqaActions' function in your response. Don't call any other function."

var HalaqaActionsFn = openai.FunctionDefinition{
	Name: "halaqaActions",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"actionItems": {
				Type:        jsonschema.Array,
				Description: "3-5 action items drawn from the halaqa notes.",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"description": {
							Type:        jsonschema.String,
							Description: "A single actionable sentence.",
						},
					},
					Required: []string{"description"},
				},
			},
		},
		Required: []string{"actionItems"},
	},
}
