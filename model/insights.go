package model

import (
	"context"
	"encoding/json"
	"fmt"

	"muhasab-server/model/prompts"
	"muhasab-server/shared"
)

type insightsResponse struct {
	Insights []shared.Insight `json:"insights"`
}

// ReflectionInsights surfaces insights from a reflection conversation.
func ReflectionInsights(ctx context.Context, messages []shared.ConvoMessage) ([]shared.Insight, error) {
	if !Configured() {
		return fallbackInsights(), nil
	}

	return insights(ctx, formatConversation(messages))
}

// HalaqaInsights surfaces insights from a halaqa entry.
func HalaqaInsights(ctx context.Context, halaqa *shared.Halaqa) ([]shared.Insight, error) {
	if !Configured() {
		return fallbackInsights(), nil
	}

	return insights(ctx, formatHalaqa(halaqa))
}

func insights(ctx context.Context, content string) ([]shared.Insight, error) {
	byteRes, err := callFn(ctx, prompts.SysInsights, userMessage(content), prompts.InsightsFn)
	if err != nil {
		return nil, err
	}

	var res insightsResponse
	if err := json.Unmarshal(byteRes, &res); err != nil {
		return nil, fmt.Errorf("error parsing insights response: %v", err)
	}

	return res.Insights, nil
}

func fallbackInsights() []shared.Insight {
	return []shared.Insight{
		{Type: "growth", Content: "You're making space for regular self-accounting, which is the foundation of growth."},
		{Type: "habit", Content: "Small consistent practices tend to outlast ambitious ones."},
	}
}
