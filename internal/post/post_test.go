package post

import (
	"errors"
	"testing"
)

func TestNormalize_FillsPlaceholders(t *testing.T) {
	got := Normalize(Post{})
	if got.Title != NoTitle {
		t.Fatalf("title: got %q, want %q", got.Title, NoTitle)
	}
	if got.Date != NoDate {
		t.Fatalf("date: got %q, want %q", got.Date, NoDate)
	}
	if got.Author != UnknownAuthor {
		t.Fatalf("author: got %q, want %q", got.Author, UnknownAuthor)
	}
	if got.Content != NoContent {
		t.Fatalf("content: got %q, want %q", got.Content, NoContent)
	}
	if got.URL != "" || got.ID != "" {
		t.Fatalf("url/id must stay empty, got %q / %q", got.URL, got.ID)
	}
}

func TestNormalize_KeepsResolvedFields(t *testing.T) {
	in := Post{
		Title:   "A title",
		Date:    "2024-07-15",
		Author:  "Jane Smith",
		Content: "Body",
		URL:     "https://v2.ai/insights/a-title",
		ID:      "abc123",
	}
	if got := Normalize(in); got != in {
		t.Fatalf("normalize changed a fully populated post: %+v", got)
	}
}

func TestFromError_Shape(t *testing.T) {
	p := FromError("Error fetching post", errors.New("boom"), "https://example.com/x", "")
	if p.Title != "Error fetching post" {
		t.Fatalf("title: %q", p.Title)
	}
	if p.Content != "Error: boom" {
		t.Fatalf("content: %q", p.Content)
	}
	if p.Date != "" || p.Author != "" {
		t.Fatalf("date/author must be empty on transport failure")
	}
	if p.URL != "https://example.com/x" {
		t.Fatalf("url: %q", p.URL)
	}
}

func TestIsError(t *testing.T) {
	cases := []struct {
		name string
		p    Post
		want bool
	}{
		{"transport failure", FromError("Error fetching post", errors.New("404"), "", ""), true},
		{"graphql errors", Post{Title: "Error fetching from Contentful", Content: "GraphQL errors: bad query"}, true},
		{"regular post", Post{Title: "Hello", Content: "World"}, false},
		{"content mentioning errors mid-text", Post{Title: "Postmortem", Content: "We hit an Error budget"}, false},
	}
	for _, tc := range cases {
		if got := IsError(tc.p); got != tc.want {
			t.Errorf("%s: IsError = %v, want %v", tc.name, got, tc.want)
		}
	}
}
