package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/emarai/bookshelf/pkg/types"
)

func newAttachedBackend(t *testing.T) (*Backend, types.Config) {
	t.Helper()
	b := NewBackend()
	config := testConfig(t)
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { b.Detach() })
	return b, config
}

func mustAdd(t *testing.T, b *Backend, caller, title string) string {
	t.Helper()
	id, err := b.AddBook(caller, &types.Book{
		Title:       title,
		Description: "Tutorial for mechanics",
		Status:      types.StatusList,
		Image:       "https://example.com",
	})
	if err != nil {
		t.Fatalf("AddBook(%q) failed: %v", title, err)
	}
	return id
}

func TestAddBook_AssignsSequentialIDs(t *testing.T) {
	b, _ := newAttachedBackend(t)

	for want := 1; want <= 3; want++ {
		id := mustAdd(t, b, "carol.testnet", "Book "+strconv.Itoa(want))
		if id != strconv.Itoa(want) {
			t.Errorf("expected id %d, got %q", want, id)
		}
	}
}

func TestAddBook_SetsOwnerAndDefaults(t *testing.T) {
	b, _ := newAttachedBackend(t)

	input := &types.Book{Title: "Motorcycle Mechanics 101", Description: "Tutorial for mechanics", Image: "https://example.com"}
	id, err := b.AddBook("carol.testnet", input)
	if err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}

	book, err := b.GetBook(id)
	if err != nil {
		t.Fatalf("GetBook failed: %v", err)
	}
	if book.BookID != id {
		t.Errorf("expected book id %q, got %q", id, book.BookID)
	}
	if book.AccountID != "carol.testnet" {
		t.Errorf("expected owner carol.testnet, got %q", book.AccountID)
	}
	if book.Status != types.StatusList {
		t.Errorf("expected default status list, got %q", book.Status)
	}
	if book.Title != "Motorcycle Mechanics 101" {
		t.Errorf("title mismatch: %q", book.Title)
	}
	if book.Description != "Tutorial for mechanics" {
		t.Errorf("description mismatch: %q", book.Description)
	}
	if book.Image != "https://example.com" {
		t.Errorf("image mismatch: %q", book.Image)
	}
	if book.CreatedAt.IsZero() || book.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestAddBook_InvalidInput(t *testing.T) {
	b, _ := newAttachedBackend(t)

	if _, err := b.AddBook("", &types.Book{Title: "x"}); !errors.Is(err, types.ErrEmptyCaller) {
		t.Errorf("expected ErrEmptyCaller, got %v", err)
	}
	if _, err := b.AddBook("carol.testnet", &types.Book{}); !errors.Is(err, types.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle, got %v", err)
	}
	if _, err := b.AddBook("carol.testnet", nil); !errors.Is(err, types.ErrEmptyTitle) {
		t.Errorf("expected ErrEmptyTitle for nil book, got %v", err)
	}
	if _, err := b.AddBook("carol.testnet", &types.Book{Title: "x", Status: "finished"}); !errors.Is(err, types.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	// Failed adds must not consume ids.
	id := mustAdd(t, b, "carol.testnet", "First valid")
	if id != "1" {
		t.Errorf("expected first id 1, got %q", id)
	}
}

func TestUpdateBook_OwnerPartialUpdate(t *testing.T) {
	b, _ := newAttachedBackend(t)
	id := mustAdd(t, b, "carol.testnet", "Motorcycle Mechanics 101")

	status := types.StatusRead
	updated, err := b.UpdateBook("carol.testnet", id, types.BookPatch{Status: &status})
	if err != nil {
		t.Fatalf("UpdateBook failed: %v", err)
	}
	if updated.Status != types.StatusRead {
		t.Errorf("expected status read, got %q", updated.Status)
	}
	if updated.Title != "Motorcycle Mechanics 101" {
		t.Errorf("title must be unchanged, got %q", updated.Title)
	}

	// Verify persisted.
	book, err := b.GetBook(id)
	if err != nil {
		t.Fatalf("GetBook failed: %v", err)
	}
	if book.Status != types.StatusRead {
		t.Errorf("expected persisted status read, got %q", book.Status)
	}
}

func TestUpdateBook_Errors(t *testing.T) {
	b, _ := newAttachedBackend(t)
	id := mustAdd(t, b, "carol.testnet", "Motorcycle Mechanics 101")

	status := types.StatusRead
	patch := types.BookPatch{Status: &status}

	if _, err := b.UpdateBook("carol.testnet", "999", patch); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := b.UpdateBook("mallory.testnet", id, patch); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := b.UpdateBook("carol.testnet", "", patch); !errors.Is(err, types.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}

	bad := "finished"
	if _, err := b.UpdateBook("carol.testnet", id, types.BookPatch{Status: &bad}); !errors.Is(err, types.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}

	// The failed updates must leave the record unchanged.
	book, err := b.GetBook(id)
	if err != nil {
		t.Fatalf("GetBook failed: %v", err)
	}
	if book.Status != types.StatusList {
		t.Errorf("expected status list after failed updates, got %q", book.Status)
	}
}

func TestDeleteBook(t *testing.T) {
	b, _ := newAttachedBackend(t)
	id := mustAdd(t, b, "carol.testnet", "Motorcycle Mechanics 101")

	if _, err := b.DeleteBook("mallory.testnet", id); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}

	deleted, err := b.DeleteBook("carol.testnet", id)
	if err != nil {
		t.Fatalf("DeleteBook failed: %v", err)
	}
	if deleted.BookID != id {
		t.Errorf("expected deleted book id %q, got %q", id, deleted.BookID)
	}

	if _, err := b.GetBook(id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if _, err := b.DeleteBook("carol.testnet", id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestDeleteBook_IDNeverReused(t *testing.T) {
	b, _ := newAttachedBackend(t)

	id1 := mustAdd(t, b, "carol.testnet", "First")
	if _, err := b.DeleteBook("carol.testnet", id1); err != nil {
		t.Fatalf("DeleteBook failed: %v", err)
	}

	id2 := mustAdd(t, b, "carol.testnet", "Second")
	if id2 != "2" {
		t.Errorf("expected id 2 after deleting id 1, got %q", id2)
	}
}

func TestListBooks_OrderFilterAndPaging(t *testing.T) {
	b, _ := newAttachedBackend(t)

	mustAdd(t, b, "gnaor.testnet", "One")
	mustAdd(t, b, "gnaor.testnet", "Two")
	mustAdd(t, b, "bob.testnet", "Other")
	mustAdd(t, b, "gnaor.testnet", "Three")

	// All books, insertion order.
	all, err := b.ListBooks(types.ListQuery{})
	if err != nil {
		t.Fatalf("ListBooks failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 books, got %d", len(all))
	}
	for i, book := range all {
		if book.BookID != strconv.Itoa(i+1) {
			t.Errorf("position %d: expected id %d, got %q", i, i+1, book.BookID)
		}
	}

	// Owner filter applies before paging.
	owned, err := b.ListBooks(types.ListQuery{AccountID: "gnaor.testnet"})
	if err != nil {
		t.Fatalf("ListBooks(owner) failed: %v", err)
	}
	if len(owned) != 3 {
		t.Fatalf("expected 3 owned books, got %d", len(owned))
	}
	for _, book := range owned {
		if book.AccountID != "gnaor.testnet" {
			t.Errorf("unexpected owner %q", book.AccountID)
		}
	}

	// Skip 1, limit 1 on the filtered set yields the second-created book.
	page, err := b.ListBooks(types.ListQuery{AccountID: "gnaor.testnet", Skip: 1, Limit: 1})
	if err != nil {
		t.Fatalf("ListBooks(page) failed: %v", err)
	}
	if len(page) != 1 {
		t.Fatalf("expected 1 book, got %d", len(page))
	}
	if page[0].Title != "Two" {
		t.Errorf("expected second-created book, got %q", page[0].Title)
	}

	// Out-of-range skip yields an empty, non-nil slice.
	empty, err := b.ListBooks(types.ListQuery{Skip: 100})
	if err != nil {
		t.Fatalf("ListBooks(skip=100) failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", empty)
	}

	// Invalid bounds rejected.
	if _, err := b.ListBooks(types.ListQuery{Skip: -1}); !errors.Is(err, types.ErrInvalidSkip) {
		t.Errorf("expected ErrInvalidSkip, got %v", err)
	}
	if _, err := b.ListBooks(types.ListQuery{Limit: -1}); !errors.Is(err, types.ErrInvalidLimit) {
		t.Errorf("expected ErrInvalidLimit, got %v", err)
	}
}

func TestListBooks_NumericIDOrder(t *testing.T) {
	b, _ := newAttachedBackend(t)

	// Push past single digits so lexicographic ordering would misplace "10".
	for i := 1; i <= 11; i++ {
		mustAdd(t, b, "carol.testnet", "Book "+strconv.Itoa(i))
	}

	books, err := b.ListBooks(types.ListQuery{Skip: 8, Limit: 3})
	if err != nil {
		t.Fatalf("ListBooks failed: %v", err)
	}
	got := []string{}
	for _, book := range books {
		got = append(got, book.BookID)
	}
	want := "9,10,11"
	if strings.Join(got, ",") != want {
		t.Errorf("expected ids %s, got %s", want, strings.Join(got, ","))
	}
}

func TestSequence_SurvivesReattach(t *testing.T) {
	config := testConfig(t)

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	id := mustAdd(t, b, "carol.testnet", "First")
	if _, err := b.DeleteBook("carol.testnet", id); err != nil {
		t.Fatalf("DeleteBook failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatalf("re-Attach failed: %v", err)
	}
	defer b2.Detach()

	id2, err := b2.AddBook("carol.testnet", &types.Book{Title: "Second"})
	if err != nil {
		t.Fatalf("AddBook failed: %v", err)
	}
	if id2 != "2" {
		t.Errorf("expected id 2 after re-attach, got %q", id2)
	}
}

func TestAddBook_PersistsToJSONL(t *testing.T) {
	b, config := newAttachedBackend(t)
	mustAdd(t, b, "carol.testnet", "Persisted book")

	content, err := os.ReadFile(filepath.Join(config.DataDir, booksJSONL))
	if err != nil {
		t.Fatalf("reading books.jsonl: %v", err)
	}
	if !strings.Contains(string(content), `"title":"Persisted book"`) {
		t.Errorf("books.jsonl missing record: %s", content)
	}

	seq, err := os.ReadFile(filepath.Join(config.DataDir, sequenceJSONL))
	if err != nil {
		t.Fatalf("reading sequence.jsonl: %v", err)
	}
	if !strings.Contains(string(seq), `"next_id":2`) {
		t.Errorf("sequence.jsonl not advanced: %s", seq)
	}
}

func TestEvents_RecordedPerMutation(t *testing.T) {
	b, _ := newAttachedBackend(t)

	id := mustAdd(t, b, "carol.testnet", "Tracked")
	status := types.StatusReading
	if _, err := b.UpdateBook("carol.testnet", id, types.BookPatch{Status: &status}); err != nil {
		t.Fatalf("UpdateBook failed: %v", err)
	}
	if _, err := b.DeleteBook("carol.testnet", id); err != nil {
		t.Fatalf("DeleteBook failed: %v", err)
	}

	events, err := b.ListEvents(id)
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	// Newest first.
	ops := []string{events[0].Op, events[1].Op, events[2].Op}
	if ops[0] != opDelete || ops[1] != opUpdate || ops[2] != opAdd {
		t.Errorf("unexpected event order: %v", ops)
	}
	for _, e := range events {
		if e.AccountID != "carol.testnet" {
			t.Errorf("unexpected event account %q", e.AccountID)
		}
		if e.EventID == "" {
			t.Error("event id not set")
		}
	}

	// Failed mutations leave no events.
	if _, err := b.UpdateBook("mallory.testnet", "999", types.BookPatch{Status: &status}); err == nil {
		t.Fatal("expected update of unknown book to fail")
	}
	all, err := b.ListEvents("")
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 events after failed mutation, got %d", len(all))
	}
}
