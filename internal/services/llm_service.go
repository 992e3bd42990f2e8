package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/justsurfingit/job-search-tracker/internal/config"
	"github.com/justsurfingit/job-search-tracker/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxPostingChars bounds how much of a page is sent to the model.
const maxPostingChars = 20000

// Completer turns a prompt into a model response.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type geminiCompleter struct {
	client llms.Model
}

// NewGeminiCompleter returns nil when no API key is configured.
func NewGeminiCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(cfg.APIKey),
		googleai.WithDefaultModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiCompleter{client: llm}, nil
}

func (g *geminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.client, prompt)
}

type LLMService struct {
	Client Completer
}

func NewLLMService(client Completer) *LLMService {
	return &LLMService{Client: client}
}

func (s *LLMService) Configured() bool {
	return s.Client != nil
}

const applicationExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract the details needed to track an application.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company": "Name of the company (e.g., Google, StartupInc)",
    "position": "Job title (e.g., Senior Backend Engineer)",
    "companyWebsite": "The company's homepage URL if present, otherwise null",
    "location": "Job location or 'Remote'",
    "salaryMin": "Lower bound of the yearly salary as an integer, otherwise null",
    "salaryMax": "Upper bound of the yearly salary as an integer, otherwise null",
    "notes": "A short summary of responsibilities, requirements and tech stack. Remove HTML tags."
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractApplication asks the model for an application draft from a posting.
func (s *LLMService) ExtractApplication(ctx context.Context, req *dtos.ExtractionRequest) (*dtos.ApplicationDraft, error) {
	if !s.Configured() {
		return nil, ErrUnavailable
	}

	rawHTML := truncateUTF8(req.RawHTML, maxPostingChars)
	resp, err := s.Client.Complete(ctx, fmt.Sprintf(applicationExtractionPrompt, rawHTML))
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}

	draft, err := parseDraft(resp)
	if err != nil {
		return nil, err
	}
	if draft.JobURL == "" {
		draft.JobURL = req.URL
	}
	return draft, nil
}

type rawDraft struct {
	Company        *string  `json:"company"`
	Position       *string  `json:"position"`
	CompanyWebsite *string  `json:"companyWebsite"`
	Location       *string  `json:"location"`
	SalaryMin      *float64 `json:"salaryMin"`
	SalaryMax      *float64 `json:"salaryMax"`
	Notes          *string  `json:"notes"`
}

// parseDraft tolerates a markdown fence around the JSON.
func parseDraft(resp string) (*dtos.ApplicationDraft, error) {
	body := strings.TrimSpace(resp)
	body = strings.TrimPrefix(body, "```json")
	body = strings.TrimPrefix(body, "```")
	body = strings.TrimSuffix(body, "```")

	var raw rawDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(body)), &raw); err != nil {
		return nil, fmt.Errorf("model returned invalid JSON: %w", err)
	}

	return &dtos.ApplicationDraft{
		Company:        deref(raw.Company),
		Position:       deref(raw.Position),
		CompanyWebsite: deref(raw.CompanyWebsite),
		Location:       deref(raw.Location),
		SalaryMin:      wholeNumber(raw.SalaryMin),
		SalaryMax:      wholeNumber(raw.SalaryMax),
		Notes:          deref(raw.Notes),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func wholeNumber(f *float64) *int {
	if f == nil || *f <= 0 {
		return nil
	}
	n := int(*f)
	return &n
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
