package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeneratorGenerate(t *testing.T) {
	ctx := context.Background()

	t.Run("successful generation", func(t *testing.T) {
		var gotBody map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			json.Unmarshal(body, &gotBody)
			json.NewEncoder(w).Encode([]GeneratedCard{
				{Front: "What is Go?", Back: "A programming language"},
			})
		}))
		defer server.Close()

		cards, err := NewGenerator(server.URL).Generate(ctx, "note content")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if len(cards) != 1 || cards[0].Front != "What is Go?" {
			t.Errorf("cards = %+v", cards)
		}
		if gotBody["content"] != "note content" {
			t.Errorf("request body = %v, want the note content", gotBody)
		}
	})

	t.Run("unconfigured endpoint", func(t *testing.T) {
		_, err := NewGenerator("").Generate(ctx, "content")
		if !errors.Is(err, ErrGeneratorDisabled) {
			t.Errorf("Generate: %v, want ErrGeneratorDisabled", err)
		}
	})

	t.Run("non-200 status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "model overloaded", http.StatusServiceUnavailable)
		}))
		defer server.Close()

		if _, err := NewGenerator(server.URL).Generate(ctx, "content"); err == nil {
			t.Error("expected error for 503 response")
		}
	})

	t.Run("malformed response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "not json")
		}))
		defer server.Close()

		if _, err := NewGenerator(server.URL).Generate(ctx, "content"); err == nil {
			t.Error("expected error for malformed response")
		}
	})

	t.Run("card with a missing side", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode([]GeneratedCard{{Front: "Q", Back: ""}})
		}))
		defer server.Close()

		if _, err := NewGenerator(server.URL).Generate(ctx, "content"); err == nil {
			t.Error("expected error for incomplete card")
		}
	})
}
