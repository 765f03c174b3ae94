package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/config"
)

// scriptedModel answers every prompt with a fixed reply.
type scriptedModel struct {
	reply  string
	err    error
	prompt string
}

func (m *scriptedModel) GenerateContent(_ context.Context, msgs []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, part := range msgs[0].Parts {
		if text, ok := part.(llms.TextContent); ok {
			m.prompt = text.Text
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *scriptedModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestExtractJobDraft(t *testing.T) {
	model := &scriptedModel{reply: "```json\n" + `{"title":"Data Intern","company":"Acme","location":"Remote","min_salary":30000,"max_salary":null,"tags":["SQL","Python"]}` + "\n```"}
	svc := &LLMService{Client: model}

	draft, err := svc.ExtractJobDraft(context.Background(), "We are hiring a data intern at Acme")

	require.NoError(t, err)
	assert.Equal(t, "Data Intern", draft.Title)
	require.NotNil(t, draft.MinSalary)
	assert.Equal(t, 30000, *draft.MinSalary)
	assert.Nil(t, draft.MaxSalary)
	assert.Equal(t, []string{"SQL", "Python"}, draft.Tags)
	assert.Contains(t, model.prompt, "hiring a data intern")
}

func TestExtractJobDraftFailures(t *testing.T) {
	svc := &LLMService{Client: &scriptedModel{reply: "sorry, I cannot"}}
	_, err := svc.ExtractJobDraft(context.Background(), "text")
	assert.True(t, apperr.Is(err, apperr.CodeInternal))

	svc = &LLMService{Client: &scriptedModel{err: errors.New("quota")}}
	_, err = svc.ExtractJobDraft(context.Background(), "text")
	assert.True(t, apperr.Is(err, apperr.CodeInternal))
}

func TestNewLLMServiceDisabledWithoutKey(t *testing.T) {
	svc, err := NewLLMService(context.Background(), config.LLMConfig{})
	assert.NoError(t, err)
	assert.Nil(t, svc)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(` {"a":1} `))
}

func TestTruncateUTF8KeepsWholeCharacters(t *testing.T) {
	assert.Equal(t, "short", truncateUTF8("short", 10))

	// "é" is two bytes; a cut after 4 bytes would land inside the third one.
	assert.Equal(t, "éé", truncateUTF8("ééé", 5))
	assert.Equal(t, "", truncateUTF8("é", 1))
}

func TestExtractJobDraftSendsValidUTF8(t *testing.T) {
	model := &scriptedModel{reply: `{"title":"Intern"}`}
	svc := &LLMService{Client: model}

	raw := "a" + strings.Repeat("é", maxExtractionInput)
	_, err := svc.ExtractJobDraft(context.Background(), raw)

	require.NoError(t, err)
	assert.True(t, utf8.ValidString(model.prompt))
	assert.NotContains(t, model.prompt, strings.Repeat("é", maxExtractionInput/2+1))
}
