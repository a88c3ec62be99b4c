package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"chronotes/model"
	"chronotes/services"
	"chronotes/store"
)

func TestParseFlashcards(t *testing.T) {
	t.Run("classic block", func(t *testing.T) {
		content := "Some intro text.\n\n``flash\nCapitals\n\nWhat is the capital of France?\n\nParis\n``flashed\n\nTrailing text."
		cards := ParseFlashcards("note-1", content)
		if len(cards) != 1 {
			t.Fatalf("parsed %d cards, want 1", len(cards))
		}
		card := cards[0]
		if card.NoteID != "note-1" {
			t.Errorf("NoteID = %q, want note-1", card.NoteID)
		}
		if card.Title != "Capitals" {
			t.Errorf("Title = %q, want Capitals", card.Title)
		}
		if card.Front != "What is the capital of France?" {
			t.Errorf("Front = %q", card.Front)
		}
		if card.Back != "Paris" {
			t.Errorf("Back = %q", card.Back)
		}
	})

	t.Run("classic back keeps internal blank lines", func(t *testing.T) {
		content := "``flash\nT\n\nF\n\nfirst line\n\nsecond line\n``flashed"
		cards := ParseFlashcards("n", content)
		if len(cards) != 1 {
			t.Fatalf("parsed %d cards, want 1", len(cards))
		}
		if cards[0].Back != "first line\n\nsecond line" {
			t.Errorf("Back = %q", cards[0].Back)
		}
	})

	t.Run("alt blocks get numbered titles", func(t *testing.T) {
		content := "???\nWhat is 2+2?\n---\n4\n???\n\nmore prose\n\n???\nWhat is 3+3?\n---\n6\n???"
		cards := ParseFlashcards("n", content)
		if len(cards) != 2 {
			t.Fatalf("parsed %d cards, want 2", len(cards))
		}
		if cards[0].Title != "Flashcard 1" || cards[1].Title != "Flashcard 2" {
			t.Errorf("titles = %q, %q", cards[0].Title, cards[1].Title)
		}
		if cards[0].Front != "What is 2+2?" || cards[0].Back != "4" {
			t.Errorf("card 1 = %+v", cards[0])
		}
	})

	t.Run("mixed forms keep document order", func(t *testing.T) {
		content := "``flash\nFirst\n\nQ1\n\nA1\n``flashed\n\n???\nQ2\n---\nA2\n???"
		cards := ParseFlashcards("n", content)
		if len(cards) != 2 {
			t.Fatalf("parsed %d cards, want 2", len(cards))
		}
		if cards[0].Title != "First" {
			t.Errorf("first card title = %q", cards[0].Title)
		}
		// Numbering counts every card before it, not just alt-form ones.
		if cards[1].Title != "Flashcard 2" {
			t.Errorf("second card title = %q, want Flashcard 2", cards[1].Title)
		}
	})

	t.Run("question marks in prose do not open a block", func(t *testing.T) {
		content := "Did you know??? Amazing.\n\n``flash\nT\n\nF\n\nB\n``flashed"
		cards := ParseFlashcards("n", content)
		if len(cards) != 1 {
			t.Fatalf("parsed %d cards, want 1", len(cards))
		}
		if cards[0].Title != "T" {
			t.Errorf("Title = %q, want T", cards[0].Title)
		}
	})

	t.Run("prose with a horizontal rule is not a card", func(t *testing.T) {
		content := "Really??? I think so.\n\n---\n\nMore prose??? Yes."
		if cards := ParseFlashcards("n", content); len(cards) != 0 {
			t.Fatalf("parsed %d cards, want 0: %+v", len(cards), cards)
		}
	})

	t.Run("malformed blocks are skipped", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
			want    int
		}{
			{"no markers", "just an ordinary note", 0},
			{"unclosed classic", "``flash\nT\n\nF\n\nB", 0},
			{"classic missing back section", "``flash\nTitle\n\nFront only\n``flashed", 0},
			{"alt missing separator", "???\nquestion only\n???", 0},
			{"alt unclosed", "???\nQ\n---\nA", 0},
			{"empty alt sides", "???\n\n---\n\n???", 0},
			{"bad block then good block", "``flash\nbroken\n``flashed\n``flash\nT\n\nF\n\nB\n``flashed", 1},
			{"unclosed classic before alt block", "``flash\nstray opener\n\n???\nQ\n---\nA\n???", 1},
			{"alt opener without separator before classic block", "???\nstray question\n\n``flash\nT\n\nF\n\nB\n``flashed", 1},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				if got := ParseFlashcards("n", tt.content); len(got) != tt.want {
					t.Errorf("parsed %d cards, want %d", len(got), tt.want)
				}
			})
		}
	})
}

func seedNote(t *testing.T, mem *store.Memory, content string) model.Note {
	t.Helper()
	ctx := context.Background()
	folder, err := mem.CreateFolder(ctx, "Notes")
	if err != nil {
		t.Fatalf("CreateFolder: %v", err)
	}
	note, err := mem.CreateNote(ctx, model.Note{
		FolderID: folder.ID,
		Title:    "Test note",
		Content:  content,
	})
	if err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	return note
}

func TestFlashcardServiceParsed(t *testing.T) {
	mem := store.NewMemory()
	note := seedNote(t, mem, "???\nQ\n---\nA\n???")
	svc := &FlashcardService{}

	cards, err := svc.Parsed(context.Background(), mem, note.ID)
	if err != nil {
		t.Fatalf("Parsed: %v", err)
	}
	if len(cards) != 1 || cards[0].NoteID != note.ID {
		t.Fatalf("cards = %+v", cards)
	}

	if _, err := svc.Parsed(context.Background(), mem, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing note, got %v", err)
	}
}

func TestFlashcardServiceGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]services.GeneratedCard{
			{Front: "Q1", Back: "A1"},
			{Front: "Q2", Back: "A2"},
		})
	}))
	defer server.Close()

	mem := store.NewMemory()
	note := seedNote(t, mem, "study material")
	svc := &FlashcardService{Generator: services.NewGenerator(server.URL)}

	cards, err := svc.Generate(context.Background(), mem, note.ID)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(cards) != 2 {
		t.Fatalf("generated %d cards, want 2", len(cards))
	}
	if cards[0].Title != "Flashcard 1" || cards[1].Title != "Flashcard 2" {
		t.Errorf("titles = %q, %q", cards[0].Title, cards[1].Title)
	}

	// Memory implements FlashcardStore, so the batch is persisted.
	saved, err := mem.ListFlashcards(context.Background(), note.ID)
	if err != nil {
		t.Fatalf("ListFlashcards: %v", err)
	}
	if len(saved) != 2 {
		t.Errorf("persisted %d cards, want 2", len(saved))
	}
}

func TestFlashcardServiceGenerateDisabled(t *testing.T) {
	mem := store.NewMemory()
	note := seedNote(t, mem, "study material")
	svc := &FlashcardService{Generator: services.NewGenerator("")}

	if _, err := svc.Generate(context.Background(), mem, note.ID); !errors.Is(err, services.ErrGeneratorDisabled) {
		t.Errorf("expected ErrGeneratorDisabled, got %v", err)
	}
}
