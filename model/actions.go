package model

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"muhasab-server/model/prompts"
	"muhasab-server/shared"

	"github.com/google/uuid"
)

type actionItemsResponse struct {
	ActionItems []string `json:"actionItems"`
}

// ReflectionActionItems distills a reflection conversation into action items.
func ReflectionActionItems(ctx context.Context, messages []shared.ConvoMessage) ([]string, error) {
	if !Configured() {
		return []string{
			"Set aside five minutes after fajr for reflection.",
			"Write down one thing you're grateful for each evening.",
		}, nil
	}

	byteRes, err := callFn(ctx, prompts.SysActionItems, userMessage(formatConversation(messages)), prompts.ActionItemsFn)
	if err != nil {
		return nil, err
	}

	var res actionItemsResponse
	if err := json.Unmarshal(byteRes, &res); err != nil {
		return nil, fmt.Errorf("error parsing action items response: %v", err)
	}

	return res.ActionItems, nil
}

type halaqaActionsResponse struct {
	ActionItems []struct {
		Description string `json:"description"`
	} `json:"actionItems"`
}

// HalaqaActionItems generates action items from a halaqa entry's notes.
func HalaqaActionItems(ctx context.Context, halaqa *shared.Halaqa) ([]shared.ActionItem, error) {
	if !Configured() {
		return []shared.ActionItem{
			{Id: uuid.New().String(), Description: "Review your notes from this halaqa within three days."},
			{Id: uuid.New().String(), Description: "Share one takeaway with a friend or family member."},
		}, nil
	}

	byteRes, err := callFn(ctx, prompts.SysHalaqaActions, userMessage(formatHalaqa(halaqa)), prompts.HalaqaActionsFn)
	if err != nil {
		return nil, err
	}

	var res halaqaActionsResponse
	if err := json.Unmarshal(byteRes, &res); err != nil {
		return nil, fmt.Errorf("error parsing halaqa actions response: %v", err)
	}

	actionItems := make([]shared.ActionItem, 0, len(res.ActionItems))
	for _, item := range res.ActionItems {
		actionItems = append(actionItems, shared.ActionItem{
			Id:          uuid.New().String(),
			Description: item.Description,
		})
	}

	return actionItems, nil
}

func formatConversation(messages []shared.ConvoMessage) string {
	var b strings.Builder
	b.WriteString("Conversation:\n\n")
	for _, msg := range messages {
		b.WriteString(msg.Role)
		b.WriteString(": ")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

func formatHalaqa(halaqa *shared.Halaqa) string {
	return fmt.Sprintf("Halaqa notes:\n\nTitle: %s\nSpeaker: %s\nTopic: %s\n\nKey reflection:\n%s\n\nIntended impact:\n%s\n",
		halaqa.Title, halaqa.Speaker, halaqa.Topic, halaqa.KeyReflection, halaqa.Impact)
}
