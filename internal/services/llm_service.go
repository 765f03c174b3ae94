package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/justsurfingit/job-board/internal/apperr"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/dtos"
)

// LLMService drafts job postings from pasted text.
type LLMService struct {
	Client llms.Model
}

// NewLLMService initializes the Gemini client. It returns nil when no API key
// is configured, which turns the extraction endpoint off.
func NewLLMService(ctx context.Context, cfg config.LLMConfig) (*LLMService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.GeminiAPIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

const maxExtractionInput = 20000

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided text of a job posting and extract structured data for a campus job board.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Backend Engineer Intern)",
    "company": "Name of the company",
    "location": "Job location or 'Remote'",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements.",
    "job_type": "One of Full-time, Part-time, Internship, Contract",
    "experience_level": "One of Entry, Mid, Senior",
    "min_salary": "Lower yearly salary bound as an integer, otherwise null",
    "max_salary": "Upper yearly salary bound as an integer, otherwise null",
    "tags": ["Array", "of", "skills", "and", "keywords"]
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractJobDraft asks the model for a structured draft of the posting.
func (s *LLMService) ExtractJobDraft(ctx context.Context, rawText string) (*dtos.JobDraft, error) {
	rawText = truncateUTF8(rawText, maxExtractionInput)
	prompt := fmt.Sprintf(jobExtractionPrompt, rawText)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt, llms.WithTemperature(0))
	if err != nil {
		return nil, apperr.Internal("AI extraction failed", err)
	}

	var draft dtos.JobDraft
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &draft); err != nil {
		return nil, apperr.Internal("AI extraction returned malformed JSON", err)
	}
	return &draft, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a character.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// stripCodeFence removes a ```json ... ``` wrapper some models add anyway.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "```"))
}
