package usecase

import (
	"context"
	"fmt"
	"strings"

	"chronotes/model"
	"chronotes/services"
	"chronotes/store"
)

// Flashcard text syntax. Two forms are recognized:
//
//	``flash
//	Title
//
//	Front side
//
//	Back side
//	``flashed
//
// and
//
//	???
//	Question
//	---
//	Answer
//	???
//
// The second form has no title line; cards get "Flashcard {n}" where n is
// the 1-based running count of cards parsed from the document.
//
// Markers only count when they stand alone on a line. Prose containing "???"
// or a markdown horizontal rule never opens a block.
const (
	classicOpen  = "``flash"
	classicClose = "``flashed"
	altMarker    = "???"
	altSeparator = "---"
)

// ParseFlashcards extracts every flashcard block from content, in document
// order. Malformed blocks are skipped and scanning resumes right after the
// offending marker, never discarding the rest of the document. Fields are
// whitespace-trimmed.
func ParseFlashcards(noteID, content string) []model.Flashcard {
	var cards []model.Flashcard
	lines := strings.Split(content, "\n")

	for i := 0; i < len(lines); {
		switch strings.TrimSpace(lines[i]) {
		case classicOpen:
			card, next, ok := parseClassic(lines, i+1)
			i = next
			if ok {
				card.NoteID = noteID
				cards = append(cards, card)
			}
		case altMarker:
			card, next, ok := parseAlt(lines, i+1)
			i = next
			if ok {
				card.NoteID = noteID
				card.Title = fmt.Sprintf("Flashcard %d", len(cards)+1)
				cards = append(cards, card)
			}
		default:
			i++
		}
	}

	return cards
}

// markerLine returns the index of the next line equal to marker at or after
// start, ignoring surrounding whitespace.
func markerLine(lines []string, start int, marker string) int {
	for i := start; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == marker {
			return i
		}
	}
	return -1
}

// parseClassic consumes one block body: title line, blank line, front block,
// blank line, back block, closing marker line. An unclosed block resumes the
// scan on the line after the opener.
func parseClassic(lines []string, start int) (model.Flashcard, int, bool) {
	end := markerLine(lines, start, classicClose)
	if end < 0 {
		return model.Flashcard{}, start, false
	}

	body := strings.Join(lines[start:end], "\n")
	parts := strings.SplitN(body, "\n\n", 3)
	if len(parts) != 3 {
		return model.Flashcard{}, end + 1, false
	}

	card := model.Flashcard{
		Title: strings.TrimSpace(parts[0]),
		Front: strings.TrimSpace(parts[1]),
		Back:  strings.TrimSpace(parts[2]),
	}
	if card.Title == "" || card.Front == "" || card.Back == "" {
		return model.Flashcard{}, end + 1, false
	}
	return card, end + 1, true
}

// parseAlt consumes one `???` block body: question, `---` line, answer,
// closing `???` line. A missing separator or closer resumes the scan on the
// line after the opener.
func parseAlt(lines []string, start int) (model.Flashcard, int, bool) {
	end := markerLine(lines, start, altMarker)
	if end < 0 {
		return model.Flashcard{}, start, false
	}
	sep := markerLine(lines, start, altSeparator)
	if sep < 0 || sep > end {
		return model.Flashcard{}, start, false
	}

	card := model.Flashcard{
		Front: strings.TrimSpace(strings.Join(lines[start:sep], "\n")),
		Back:  strings.TrimSpace(strings.Join(lines[sep+1:end], "\n")),
	}
	if card.Front == "" || card.Back == "" {
		return model.Flashcard{}, end + 1, false
	}
	return card, end + 1, true
}

// FlashcardService ties the parser and the remote generator to the session's
// backend.
type FlashcardService struct {
	Generator *services.Generator
}

// Parsed returns the cards extracted from the note's current content. Purely
// derived; nothing is persisted.
func (s *FlashcardService) Parsed(ctx context.Context, b store.Backend, noteID string) ([]model.Flashcard, error) {
	note, err := b.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	return ParseFlashcards(note.ID, note.Content), nil
}

// Generate asks the AI endpoint for cards from the note's content. When the
// backend persists flashcards (authenticated mode) the batch is saved; guest
// sessions get the generated cards back without persistence. A generation or
// parse failure persists nothing.
func (s *FlashcardService) Generate(ctx context.Context, b store.Backend, noteID string) ([]model.Flashcard, error) {
	note, err := b.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	generated, err := s.Generator.Generate(ctx, note.Content)
	if err != nil {
		return nil, err
	}

	cards := make([]model.Flashcard, len(generated))
	for i, g := range generated {
		cards[i] = model.Flashcard{
			NoteID: note.ID,
			Title:  fmt.Sprintf("Flashcard %d", i+1),
			Front:  g.Front,
			Back:   g.Back,
		}
	}

	if fs, ok := b.(store.FlashcardStore); ok {
		if err := fs.SaveFlashcards(ctx, cards); err != nil {
			return nil, err
		}
	}
	return cards, nil
}
