package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const assistantModel = "deepseek-ai/DeepSeek-R1-Distill-Llama-70B-free"

// thinkSpan matches the reasoning spans some completion models emit before
// the actual answer.
var thinkSpan = regexp.MustCompile(`(?s)<think>.*?</think>`)

// AssistantService forwards study questions to an external text-completion
// API with a fixed persona prompt.
type AssistantService struct {
	APIKey string
	APIURL string
	Client *http.Client
}

func NewAssistantService(apiKey, apiURL string) *AssistantService {
	return &AssistantService{
		APIKey: apiKey,
		APIURL: apiURL,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type completionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// BuildPrompt wraps the user's question in the persona and the strict
// Markdown formatting rules the frontend renderer expects.
func BuildPrompt(question string) string {
	return "Answer technically and concisely. " +
		"The answer must be under 500 words, or up to 1000 if it contains code. " +
		"Do not include your reasoning process in the answer. " +
		"No line of the answer may start with leading whitespace, even under list indentation. " +
		"To format the answer correctly in Markdown, follow these rules strictly:\n\n" +
		"- Use *bold* to highlight key words or phrases.\n" +
		"- Use **mini titles** for mini titles.\n" +
		"- Use _italics_ to emphasize important terms.\n" +
		"- Use [text](url) for links.\n" +
		"- Start a line with > for quotes or important remarks.\n" +
		"- Start a line with - for lists.\n" +
		"- For code, use exactly this format without omitting lines:\n\n" +
		"```\n" +
		"[code here]\n" +
		"```\n" +
		"- Never leave a code block open. Every block must close with ```.\n\n" +
		fmt.Sprintf("Question: %s\n\n", question)
}

// StripThink removes <think>...</think> spans and trims the result.
func StripThink(text string) string {
	return strings.TrimSpace(thinkSpan.ReplaceAllString(text, ""))
}

// Ask sends the question to the completion API and returns the cleaned
// answer text. An API-side failure comes back as an error, never a panic.
func (s *AssistantService) Ask(ctx context.Context, question string) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:       assistantModel,
		Prompt:      BuildPrompt(question),
		MaxTokens:   1000,
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}

	if len(out.Choices) == 0 {
		if out.Error != nil && out.Error.Message != "" {
			return "", fmt.Errorf("completion API: %s", out.Error.Message)
		}
		return "", fmt.Errorf("completion API: empty response")
	}

	return StripThink(out.Choices[0].Text), nil
}
