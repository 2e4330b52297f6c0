package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestStripThink(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"no span", "plain answer", "plain answer"},
		{"single span", "<think>reasoning here</think>the answer", "the answer"},
		{"multiline span", "<think>line one\nline two</think>answer", "answer"},
		{"multiple spans", "<think>a</think>first <think>b</think>second", "first second"},
		{"span only", "<think>nothing but thought</think>", ""},
		{"surrounding whitespace", "  <think>x</think>  answer  ", "answer"},
	}
	for _, tc := range cases {
		if got := StripThink(tc.in); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestBuildPromptContainsQuestionAndRules(t *testing.T) {
	p := BuildPrompt("what is a pointer?")

	if !strings.Contains(p, "Question: what is a pointer?") {
		t.Error("prompt missing the question")
	}
	if !strings.Contains(p, "Markdown") {
		t.Error("prompt missing the formatting rules")
	}
	if !strings.Contains(p, "```") {
		t.Error("prompt missing the code fence instructions")
	}
}

func TestAskReturnsCleanedAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key123" {
			t.Errorf("Authorization = %q, want bearer key", got)
		}
		var req completionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if req.Model != assistantModel {
			t.Errorf("model = %q, want %q", req.Model, assistantModel)
		}
		if !strings.Contains(req.Prompt, "Question: why tests?") {
			t.Error("prompt missing question")
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]string{
				{"text": "<think>let me think</think>because they catch bugs"},
			},
		})
	}))
	defer srv.Close()

	svc := NewAssistantService("key123", srv.URL)
	got, err := svc.Ask(context.Background(), "why tests?")
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if got != "because they catch bugs" {
		t.Errorf("answer = %q, want cleaned text", got)
	}
}

func TestAskSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "model overloaded"},
		})
	}))
	defer srv.Close()

	svc := NewAssistantService("key123", srv.URL)
	_, err := svc.Ask(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "model overloaded") {
		t.Errorf("error = %q, want API message included", err)
	}
}

func TestAskEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer srv.Close()

	svc := NewAssistantService("key123", srv.URL)
	_, err := svc.Ask(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error on empty choices, got nil")
	}
}

func TestAskUnreachableAPI(t *testing.T) {
	svc := NewAssistantService("key123", "http://127.0.0.1:1")
	_, err := svc.Ask(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected transport error, got nil")
	}
}
