package model

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sashabaranov/go-openai"
)

// callFn sends a single-turn function-calling request and returns the raw
// arguments of the expected function call.
func callFn(ctx context.Context, sys string, messages []openai.ChatCompletionMessage, fn openai.FunctionDefinition) ([]byte, error) {
	allMessages := append([]openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: sys,
		},
	}, messages...)

	resp, err := Client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:     ModelName(),
			Functions: []openai.FunctionDefinition{fn},
			Messages:  allMessages,
		},
	)

	if err != nil {
		return nil, fmt.Errorf("error sending model request: %v", err)
	}

	var byteRes []byte
	for _, choice := range resp.Choices {
		if choice.FinishReason == "function_call" && choice.Message.FunctionCall != nil && choice.Message.FunctionCall.Name == fn.Name {
			fnCall := choice.Message.FunctionCall

			if strings.HasSuffix(fnCall.Arguments, ",\n}") { // remove trailing comma
				fnCall.Arguments = strings.TrimSuffix(fnCall.Arguments, ",\n}") + "\n}"
			}

			byteRes = []byte(fnCall.Arguments)
		}
	}

	if len(byteRes) == 0 {
		log.Printf("no '%s' function call found in response:\n%s", fn.Name, spew.Sdump(resp.Choices))
		return nil, fmt.Errorf("no '%s' function call found in response", fn.Name)
	}

	return CleanModelJson(byteRes), nil
}

func userMessage(content string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleUser,
			Content: content,
		},
	}
}
