package model

import (
	"context"
	"encoding/json"
	"fmt"

	"muhasab-server/model/prompts"
	"muhasab-server/shared"

	"github.com/sashabaranov/go-openai"
)

type ReflectionResponse struct {
	Understanding string   `json:"understanding"`
	Questions     []string `json:"questions"`
}

// Reflect generates the initial response to a new reflection.
func Reflect(ctx context.Context, content string) (*ReflectionResponse, error) {
	if !Configured() {
		return fallbackReflectionResponse(), nil
	}

	byteRes, err := callFn(ctx, prompts.SysReflection, userMessage(content), prompts.ReflectionFn)
	if err != nil {
		return nil, err
	}

	var res ReflectionResponse
	if err := json.Unmarshal(byteRes, &res); err != nil {
		return nil, fmt.Errorf("error parsing reflection response: %v", err)
	}

	return &res, nil
}

// Respond continues an existing reflection conversation.
func Respond(ctx context.Context, messages []shared.ConvoMessage) (*ReflectionResponse, error) {
	if !Configured() {
		return fallbackReflectionResponse(), nil
	}

	convo := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == shared.MessageRoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		convo = append(convo, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	byteRes, err := callFn(ctx, prompts.SysReflection, convo, prompts.ReflectionFn)
	if err != nil {
		return nil, err
	}

	var res ReflectionResponse
	if err := json.Unmarshal(byteRes, &res); err != nil {
		return nil, fmt.Errorf("error parsing reflection response: %v", err)
	}

	return &res, nil
}

func fallbackReflectionResponse() *ReflectionResponse {
	return &ReflectionResponse{
		Understanding: "Thank you for sharing your reflection. Taking time for honest self-accounting (muhasabah) is itself a meaningful act.",
		Questions: []string{
			"What moment today felt closest to your values?",
			"What made that moment possible?",
			"What is one small thing you could repeat tomorrow?",
		},
	}
}
