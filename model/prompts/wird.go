package prompts

import (
	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Wird suggestions follow the CLEAR framework: Cue, Low-friction,
// Expandable, Adaptable, Reward-linked. Each field is a short sentence of
// habit-design guidance attached to the suggested practice.
const SysWirdSuggestions = "You are an AI assistant that suggests small daily Islamic practices (wird) based on halaqa notes. Suggest practices that follow directly from the content. For each suggestion fill in the CLEAR habit framework fields: cue (when/where to do it), lowFriction (the smallest version), expandable (how to grow it), adaptable (how to adjust on hard days), rewardLinked (how to notice the benefit). Call the 'wirdSuggestions' function with a valid JSON object that includes the 'wirdSuggestions' key. Only call the 'wirdSuggestions' function in your response. Don't call any other function."

var WirdSuggestionsFn = openai.FunctionDefinition{
	Name: "wirdSuggestions",
	Parameters: &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"wirdSuggestions": {
				Type:        jsonschema.Array,
				Description: "2-3 suggested practices.",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"name": {
							Type:        jsonschema.String,
							Description: "Short name of the practice.",
						},
						"category": {
							Type:        jsonschema.String,
							Description: "One of: quran, dhikr, dua, salah, learning, charity.",
						},
						"target": {
							Type:        jsonschema.Integer,
							Description: "Daily target count.",
						},
						"unit": {
							Type:        jsonschema.String,
							Description: "Unit for the target, e.g. pages, minutes, times.",
						},
						"description": {
							Type:        jsonschema.String,
							Description: "One sentence tying the practice to the halaqa content.",
						},
						"cue":          {Type: jsonschema.String},
						"lowFriction":  {Type: jsonschema.String},
						"expandable":   {Type: jsonschema.String},
						"adaptable":    {Type: jsonschema.String},
						"rewardLinked": {Type: jsonschema.String},
					},
					Required: []string{"name", "category", "target", "unit", "description", "cue", "lowFriction", "expandable", "adaptable", "rewardLinked"},
				},
			},
		},
		Required: []string{"wirdSuggestions"},
	},
}
