package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"promptbook/internal/models"
)

func strPtr(s string) *string { return &s }

func TestCreatePromptValidation(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreatePrompt(models.PromptCreate{Title: "", Content: "C"}); !IsValidation(err) {
		t.Errorf("empty title error = %v, want ValidationError", err)
	}
	if _, err := s.CreatePrompt(models.PromptCreate{Title: "T", Content: ""}); !IsValidation(err) {
		t.Errorf("empty content error = %v, want ValidationError", err)
	}

	long := make([]byte, 201)
	for i := range long {
		long[i] = 'x'
	}
	if _, err := s.CreatePrompt(models.PromptCreate{Title: string(long), Content: "C"}); !IsValidation(err) {
		t.Errorf("201-char title error = %v, want ValidationError", err)
	}

	// The limit counts characters, not bytes: 200 multibyte runes fit
	wide := strings.Repeat("字", 200)
	if _, err := s.CreatePrompt(models.PromptCreate{Title: wide, Content: "C"}); err != nil {
		t.Errorf("200-rune multibyte title error = %v, want success", err)
	}
	if _, err := s.CreatePrompt(models.PromptCreate{Title: wide + "字", Content: "C"}); !IsValidation(err) {
		t.Errorf("201-rune multibyte title error = %v, want ValidationError", err)
	}
}

func TestUpdatePromptRefreshesTimestamp(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreatePrompt(models.PromptCreate{Title: "T", Content: "C", Tags: []string{"a"}})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	updated, err := s.UpdatePrompt(created.ID, models.PromptUpdate{Title: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt after title update = %v, want after %v", updated.UpdatedAt, created.UpdatedAt)
	}

	// A tags-only update is still a mutation of the prompt
	time.Sleep(10 * time.Millisecond)
	newTags := []string{"b"}
	retagged, err := s.UpdatePrompt(created.ID, models.PromptUpdate{Tags: &newTags})
	if err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}
	if !retagged.UpdatedAt.After(updated.UpdatedAt) {
		t.Errorf("UpdatedAt after tags update = %v, want after %v", retagged.UpdatedAt, updated.UpdatedAt)
	}
}

func TestCreateGetDeletePromptEndToEnd(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreatePrompt(models.PromptCreate{
		Title:      "T",
		Content:    "C",
		FolderPath: "/X/Y",
		Tags:       []string{"z"},
	})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	got, err := s.GetPrompt(created.ID)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if got.FolderPath != "/X/Y" {
		t.Errorf("folder_path = %q, want /X/Y", got.FolderPath)
	}
	if len(got.Tags) != 1 || got.Tags[0].Name != "z" {
		t.Errorf("tags = %v, want exactly [z]", got.TagNames())
	}
	if got.Tags[0].Category != "custom" {
		t.Errorf("implicitly created tag category = %q, want custom", got.Tags[0].Category)
	}

	// The whole ancestry was materialized
	if _, err := s.GetFolderByPath("/X"); err != nil {
		t.Errorf("GetFolderByPath(/X) error = %v", err)
	}

	if err := s.DeletePrompt(created.ID); err != nil {
		t.Fatalf("DeletePrompt() error = %v", err)
	}
	if _, err := s.GetPrompt(created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPrompt() after delete error = %v, want ErrNotFound", err)
	}

	prompts, total, err := s.SearchPrompts(models.PromptSearch{FolderPath: "/X/Y"})
	if err != nil {
		t.Fatalf("SearchPrompts() error = %v", err)
	}
	if len(prompts) != 0 || total != 0 {
		t.Errorf("search after delete = %d prompts total %d, want 0/0", len(prompts), total)
	}
}

func TestUpdatePromptPartial(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreatePrompt(models.PromptCreate{
		Title:      "Original",
		Content:    "Body",
		FolderPath: "/A",
		Tags:       []string{"one", "two"},
	})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	// Updating only the title leaves folder and tags alone
	updated, err := s.UpdatePrompt(created.ID, models.PromptUpdate{Title: strPtr("Renamed")})
	if err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}
	if updated.Title != "Renamed" || updated.Content != "Body" {
		t.Errorf("after title update: %q / %q", updated.Title, updated.Content)
	}
	if updated.FolderPath != "/A" || len(updated.Tags) != 2 {
		t.Errorf("title-only update touched folder/tags: %q %v", updated.FolderPath, updated.TagNames())
	}

	// Providing tags replaces the whole set
	newTags := []string{"three"}
	updated, err = s.UpdatePrompt(created.ID, models.PromptUpdate{Tags: &newTags})
	if err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].Name != "three" {
		t.Errorf("tags after replace = %v, want [three]", updated.TagNames())
	}

	// An empty set clears all tags
	empty := []string{}
	updated, err = s.UpdatePrompt(created.ID, models.PromptUpdate{Tags: &empty})
	if err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}
	if len(updated.Tags) != 0 {
		t.Errorf("tags after clear = %v, want none", updated.TagNames())
	}

	// An empty folder path moves the prompt to the root
	updated, err = s.UpdatePrompt(created.ID, models.PromptUpdate{FolderPath: strPtr("")})
	if err != nil {
		t.Fatalf("UpdatePrompt() error = %v", err)
	}
	if updated.FolderID != nil || updated.FolderPath != "" {
		t.Errorf("after move to root: folder_id=%v folder_path=%q", updated.FolderID, updated.FolderPath)
	}

	if _, err := s.UpdatePrompt(99999, models.PromptUpdate{Title: strPtr("x")}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdatePrompt(missing) error = %v, want ErrNotFound", err)
	}
}

func TestSearchPromptsQuery(t *testing.T) {
	s := newTestStore(t)

	seed := []models.PromptCreate{
		{Title: "Foo fighter", Content: "nothing"},
		{Title: "other", Content: "contains FOO inside"},
		{Title: "third", Content: "nope", Description: "about foo things"},
		{Title: "unrelated", Content: "bar"},
	}
	for _, req := range seed {
		if _, err := s.CreatePrompt(req); err != nil {
			t.Fatalf("CreatePrompt(%s) error = %v", req.Title, err)
		}
	}

	prompts, total, err := s.SearchPrompts(models.PromptSearch{Query: "foo"})
	if err != nil {
		t.Fatalf("SearchPrompts() error = %v", err)
	}
	if total != 3 || len(prompts) != 3 {
		t.Fatalf("search foo = %d prompts total %d, want 3/3", len(prompts), total)
	}
	for _, p := range prompts {
		if p.Title == "unrelated" {
			t.Error("search matched a prompt without the term")
		}
	}

	// Pagination keeps the unpaginated total and id-ascending order
	page, total, err := s.SearchPrompts(models.PromptSearch{Query: "foo", Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("SearchPrompts() error = %v", err)
	}
	if total != 3 {
		t.Errorf("paginated total = %d, want 3", total)
	}
	if len(page) != 2 {
		t.Fatalf("paginated len = %d, want 2", len(page))
	}
	if page[0].ID >= page[1].ID {
		t.Errorf("results not id-ascending: %d then %d", page[0].ID, page[1].ID)
	}
}

func TestSearchPromptsTagFilter(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreatePrompt(models.PromptCreate{Title: "both", Content: "c", Tags: []string{"a", "b"}}); err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}
	if _, err := s.CreatePrompt(models.PromptCreate{Title: "only-a", Content: "c", Tags: []string{"a"}}); err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	prompts, total, err := s.SearchPrompts(models.PromptSearch{Tags: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("SearchPrompts() error = %v", err)
	}
	if total != 1 || len(prompts) != 1 || prompts[0].Title != "both" {
		t.Errorf("AND tag filter = %v (total %d), want just 'both'", len(prompts), total)
	}

	// An unknown tag name is a no-op, not a failure
	prompts, total, err = s.SearchPrompts(models.PromptSearch{Tags: []string{"a", "missing"}})
	if err != nil {
		t.Fatalf("SearchPrompts() error = %v", err)
	}
	if total != 2 {
		t.Errorf("unknown tag filtered results: total = %d, want 2", total)
	}
	_ = prompts
}

func TestSearchPromptsMissingFolder(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreatePrompt(models.PromptCreate{Title: "T", Content: "C"}); err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	prompts, total, err := s.SearchPrompts(models.PromptSearch{FolderPath: "/does/not/exist"})
	if err != nil {
		t.Fatalf("SearchPrompts() error = %v", err)
	}
	if len(prompts) != 0 || total != 0 {
		t.Errorf("missing folder = %d prompts total %d, want 0/0", len(prompts), total)
	}
}

func TestSearchPromptsLikeEscaping(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.CreatePrompt(models.PromptCreate{Title: "has 100% certainty", Content: "c"}); err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}
	if _, err := s.CreatePrompt(models.PromptCreate{Title: "has 100x certainty", Content: "c"}); err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	_, total, err := s.SearchPrompts(models.PromptSearch{Query: "100%"})
	if err != nil {
		t.Fatalf("SearchPrompts() error = %v", err)
	}
	if total != 1 {
		t.Errorf("literal %% search total = %d, want 1", total)
	}
}

func TestCreateTagIdempotent(t *testing.T) {
	s := newTestStore(t)

	first, err := s.CreateTag("mytag", "topic", "#123ABC")
	if err != nil {
		t.Fatalf("CreateTag() error = %v", err)
	}

	second, err := s.CreateTag("mytag", "other", "#FFFFFF")
	if err != nil {
		t.Fatalf("CreateTag() second call error = %v", err)
	}
	if second.ID != first.ID || second.Category != "topic" || second.Color != "#123ABC" {
		t.Errorf("second CreateTag() = %+v, want the pre-existing tag unchanged", second)
	}

	tags, _ := s.ListTags("")
	count := 0
	for _, tag := range tags {
		if tag.Name == "mytag" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("found %d 'mytag' rows, want 1", count)
	}
}

func TestCreateTagColorValidation(t *testing.T) {
	s := newTestStore(t)

	for _, color := range []string{"red", "#12345", "#GGGGGG", "123456#"} {
		if _, err := s.CreateTag(fmt.Sprintf("t-%s", color), "", color); !IsValidation(err) {
			t.Errorf("CreateTag(color=%q) error = %v, want ValidationError", color, err)
		}
	}
	if _, err := s.CreateTag("ok", "", "#1a2B3c"); err != nil {
		t.Errorf("CreateTag(#1a2B3c) error = %v, want success", err)
	}
}

func TestDeleteTagDropsAssociations(t *testing.T) {
	s := newTestStore(t)

	p, err := s.CreatePrompt(models.PromptCreate{Title: "T", Content: "C", Tags: []string{"gone", "kept"}})
	if err != nil {
		t.Fatalf("CreatePrompt() error = %v", err)
	}

	if err := s.DeleteTag("gone"); err != nil {
		t.Fatalf("DeleteTag() error = %v", err)
	}

	got, err := s.GetPrompt(p.ID)
	if err != nil {
		t.Fatalf("GetPrompt() error = %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0].Name != "kept" {
		t.Errorf("tags after tag delete = %v, want [kept]", got.TagNames())
	}
}
