package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"muhasab-server/shared"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fnCallResponse(t *testing.T, fnName, args string) []byte {
	t.Helper()

	resp := openai.ChatCompletionResponse{
		ID:     "chatcmpl-test",
		Object: "chat.completion",
		Choices: []openai.ChatCompletionChoice{
			{
				Index:        0,
				FinishReason: openai.FinishReasonFunctionCall,
				Message: openai.ChatCompletionMessage{
					Role: openai.ChatMessageRoleAssistant,
					FunctionCall: &openai.FunctionCall{
						Name:      fnName,
						Arguments: args,
					},
				},
			},
		},
	}

	bytes, err := json.Marshal(resp)
	require.NoError(t, err)
	return bytes
}

func withMockClient(t *testing.T, handler http.HandlerFunc) {
	t.Helper()

	mockServer := httptest.NewServer(handler)
	t.Cleanup(mockServer.Close)

	t.Setenv("OPENAI_API_KEY", "test-api-key")

	config := openai.DefaultConfig("test-api-key")
	config.BaseURL = mockServer.URL + "/v1"

	orig := Client
	Client = openai.NewClientWithConfig(config)
	t.Cleanup(func() { Client = orig })
}

func TestReflect(t *testing.T) {
	withMockClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)

		var reqBody openai.ChatCompletionRequest
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		require.NoError(t, err)
		defer r.Body.Close()

		require.Len(t, reqBody.Functions, 1)
		assert.Equal(t, "reflectionResponse", reqBody.Functions[0].Name)
		require.Len(t, reqBody.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, reqBody.Messages[0].Role)
		assert.Equal(t, "Today I prayed fajr on time.", reqBody.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write(fnCallResponse(t, "reflectionResponse", `{"understanding":"You made it to fajr.","questions":["What helped you wake up?","How did it feel?","What might make it repeatable?"]}`))
	})

	res, err := Reflect(context.Background(), "Today I prayed fajr on time.")
	require.NoError(t, err)

	assert.Equal(t, "You made it to fajr.", res.Understanding)
	assert.Len(t, res.Questions, 3)
}

func TestReflect_WrongFunctionCall(t *testing.T) {
	withMockClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(fnCallResponse(t, "someOtherFunction", `{}`))
	})

	_, err := Reflect(context.Background(), "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no 'reflectionResponse' function call")
}

func TestReflect_FallbackWithoutKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	res, err := Reflect(context.Background(), "content")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Understanding)
	assert.Len(t, res.Questions, 3)
}

func TestRespond_SendsFullConversation(t *testing.T) {
	var gotMessages []openai.ChatCompletionMessage

	withMockClient(t, func(w http.ResponseWriter, r *http.Request) {
		var reqBody openai.ChatCompletionRequest
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		require.NoError(t, err)
		defer r.Body.Close()

		gotMessages = reqBody.Messages

		w.Header().Set("Content-Type", "application/json")
		w.Write(fnCallResponse(t, "reflectionResponse", `{"understanding":"ok","questions":["q1","q2","q3"]}`))
	})

	messages := []shared.ConvoMessage{
		{Role: shared.MessageRoleUser, Content: "first reflection"},
		{Role: shared.MessageRoleAssistant, Content: "first response"},
		{Role: shared.MessageRoleUser, Content: "follow-up answer"},
	}

	_, err := Respond(context.Background(), messages)
	require.NoError(t, err)

	// system prompt plus the whole conversation
	require.Len(t, gotMessages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, gotMessages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, gotMessages[2].Role)
	assert.Equal(t, "follow-up answer", gotMessages[3].Content)
}
