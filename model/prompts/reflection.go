package prompts

import (
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const SysReflection = "You are a compassionate Islamic reflection companion. The user shares a personal spiritual reflection. Respond with empathy grounded in mainstream Islamic tradition. Call the 'reflectionResponse' function with a valid JSON object that includes the 'understanding' key (a short paragraph showing you understood the reflection) and the 'questions' key (3 gentle follow-up questions that help the user go deeper). Only call the 'reflectionResponse' function in your response. Don't call any other function. Never issue religious rulings."

var ReflectionFn = openai.FunctionDefinition{
	Name: "reflectionResponse",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"understanding": {
				Type:        jsonschema.String,
				Description: "A short, warm paragraph reflecting the user's words back to them.",
			},
			"questions": {
				Type:        jsonschema.Array,
				Description: "Exactly 3 open-ended follow-up questions.",
				Items: &jsonschema.Definition{
					Type: jsonschema.String,
				},
			},
		},
		Required: []string{"understanding", "questions"},
	},
}
