package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Generator calls the external AI flashcard-generation endpoint. The endpoint
// takes raw note content and answers with an ordered list of card sides.
// Any failure (transport, status, parse) must surface without anything being
// persisted; the caller decides what to do with a successful batch.
type Generator struct {
	Endpoint string
	Client   *http.Client
}

type GeneratedCard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

var ErrGeneratorDisabled = errors.New("flashcard generator endpoint not configured")

func NewGenerator(endpoint string) *Generator {
	return &Generator{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *Generator) Generate(ctx context.Context, content string) ([]GeneratedCard, error) {
	if g.Endpoint == "" {
		return nil, ErrGeneratorDisabled
	}

	body, err := json.Marshal(map[string]string{"content": content})
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call flashcard generator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("flashcard generator returned status %d", resp.StatusCode)
	}

	var cards []GeneratedCard
	if err := json.NewDecoder(resp.Body).Decode(&cards); err != nil {
		return nil, fmt.Errorf("decode generator response: %w", err)
	}

	for i, card := range cards {
		if card.Front == "" || card.Back == "" {
			return nil, fmt.Errorf("generator response card %d is missing a side", i+1)
		}
	}

	return cards, nil
}
