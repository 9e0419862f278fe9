package model

import (
	"context"
	"encoding/json"
	"fmt"

	"muhasab-server/model/prompts"
	"muhasab-server/shared"

	"github.com/google/uuid"
)

type wirdSuggestionsResponse struct {
	WirdSuggestions []shared.WirdSuggestion `json:"wirdSuggestions"`
}

// HalaqaWirdSuggestions suggests daily practices based on a halaqa entry,
// with CLEAR framework guidance filled in for each.
func HalaqaWirdSuggestions(ctx context.Context, halaqa *shared.Halaqa) ([]shared.WirdSuggestion, error) {
	if !Configured() {
		return []shared.WirdSuggestion{
			{
				Id:           uuid.New().String(),
				Name:         "Morning dhikr",
				Category:     "dhikr",
				Target:       10,
				Unit:         "minutes",
				Description:  "A short daily remembrance practice.",
				Cue:          "Right after fajr prayer, before checking your phone.",
				LowFriction:  "Even one minute counts on busy days.",
				Expandable:   "Add the evening adhkar once mornings feel settled.",
				Adaptable:    "On travel days, do it during your commute.",
				RewardLinked: "Notice the calm it brings before the day starts.",
			},
		}, nil
	}

	byteRes, err := callFn(ctx, prompts.SysWirdSuggestions, userMessage(formatHalaqa(halaqa)), prompts.WirdSuggestionsFn)
	if err != nil {
		return nil, err
	}

	var res wirdSuggestionsResponse
	if err := json.Unmarshal(byteRes, &res); err != nil {
		return nil, fmt.Errorf("error parsing wird suggestions response: %v", err)
	}

	for i := range res.WirdSuggestions {
		res.WirdSuggestions[i].Id = uuid.New().String()
	}

	return res.WirdSuggestions, nil
}
