package contentful

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// graphqlServer records the last query and serves a fixed response body.
func graphqlServer(t *testing.T, status int, response string) (*httptest.Server, *string, *http.Header) {
	t.Helper()
	var lastQuery string
	var lastHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastHeader = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		var req struct {
			Query string `json:"query"`
		}
		_ = json.Unmarshal(body, &req)
		lastQuery = req.Query
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	return srv, &lastQuery, &lastHeader
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := New("space123", "token456")
	require.NoError(t, err)
	c.BaseURL = baseURL
	return c
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New("", "token")
	assert.Error(t, err)
	_, err = New("space", "")
	assert.Error(t, err)
}

func TestFetchPosts_Success(t *testing.T) {
	response := `{"data": {"pageBlogPostCollection": {"items": [
		{"sys": {"id": "a1"}, "title": "Post One", "slug": "post-one",
		 "author": {"name": "Jane"}, "publishedDate": "2024-01-01"},
		{"sys": {"id": "a2"}, "title": "Post Two", "slug": "post-two",
		 "author": {"name": "Bob"}, "publishedDate": "2024-02-01"}
	]}}}`
	srv, lastQuery, lastHeader := graphqlServer(t, http.StatusOK, response)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	posts := c.FetchPosts(context.Background(), 5)

	require.Len(t, posts, 2)
	assert.Equal(t, "Post One", posts[0].Title)
	assert.Equal(t, "Jane", posts[0].Author)
	assert.Equal(t, "https://v2.ai/insights/post-one", posts[0].URL)
	assert.Equal(t, "a2", posts[1].ID)

	assert.Equal(t, "Bearer token456", lastHeader.Get("Authorization"))
	assert.Contains(t, *lastQuery, "pageBlogPostCollection(limit: 5, order: sys_publishedAt_DESC)")
}

func TestFetchPosts_GraphQLErrors(t *testing.T) {
	srv, _, _ := graphqlServer(t, http.StatusOK, `{"errors": [{"message": "bad field"}]}`)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	posts := c.FetchPosts(context.Background(), 0)

	require.Len(t, posts, 1)
	assert.Equal(t, "Error fetching from Contentful", posts[0].Title)
	assert.Equal(t, "GraphQL errors: bad field", posts[0].Content)
}

func TestFetchPosts_TransportFailure(t *testing.T) {
	srv, _, _ := graphqlServer(t, http.StatusInternalServerError, "boom")
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	posts := c.FetchPosts(context.Background(), 0)

	require.Len(t, posts, 1)
	assert.Equal(t, "Error fetching from Contentful", posts[0].Title)
	assert.True(t, strings.HasPrefix(posts[0].Content, "Error: "), "content: %q", posts[0].Content)
}

func TestFetchPost_Success(t *testing.T) {
	response := `{"data": {"pageBlogPost": {
		"sys": {"id": "entry9"}, "title": "Single", "slug": "single",
		"author": {"name": "Jane"}, "publishedDate": "2024-03-01"
	}}}`
	srv, lastQuery, _ := graphqlServer(t, http.StatusOK, response)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	p := c.FetchPost(context.Background(), "entry9")

	assert.Equal(t, "Single", p.Title)
	assert.Equal(t, "entry9", p.ID)
	assert.Contains(t, *lastQuery, `pageBlogPost(id: "entry9")`)
}

func TestFetchPost_NotFound(t *testing.T) {
	srv, _, _ := graphqlServer(t, http.StatusOK, `{"data": {"pageBlogPost": null}}`)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	p := c.FetchPost(context.Background(), "missing")

	assert.Equal(t, "Post not found", p.Title)
	assert.Equal(t, "Post not found in Contentful", p.Content)
	assert.Equal(t, "missing", p.ID)
}

func TestSearchPosts_WhereClause(t *testing.T) {
	srv, lastQuery, _ := graphqlServer(t, http.StatusOK, `{"data": {"pageBlogPostCollection": {"items": []}}}`)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	c.SearchPosts(context.Background(), "AI assistants", SearchOptions{Author: "Jane"})

	assert.Contains(t, *lastQuery, `title_contains: "AI assistants"`)
	assert.Contains(t, *lastQuery, `author: { name_contains: "Jane" }`)
}

func TestSearchPosts_ErrorTitleNamesQuery(t *testing.T) {
	srv, _, _ := graphqlServer(t, http.StatusOK, `{"errors": [{"message": "nope"}]}`)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	posts := c.SearchPosts(context.Background(), "term", SearchOptions{})

	require.Len(t, posts, 1)
	assert.Equal(t, "Error searching Contentful for 'term'", posts[0].Title)
}

func TestWhereClause_Filters(t *testing.T) {
	exists := true
	got := whereClause("go", SearchOptions{
		TitleExact:      "Exact Title",
		TitleIn:         []string{"A", "B"},
		Author:          "Jane",
		AuthorExists:    &exists,
		PublishedAfter:  "2024-01-01",
		PublishedBefore: "2024-12-31",
	})
	assert.Contains(t, got, `title_contains: "go"`)
	assert.Contains(t, got, `title: "Exact Title"`)
	assert.Contains(t, got, `title_in: ["A", "B"]`)
	assert.Contains(t, got, "author_exists: true")
	assert.Contains(t, got, `publishedDate_gte: "2024-01-01"`)
	assert.Contains(t, got, `publishedDate_lte: "2024-12-31"`)
}

func TestWhereClause_Empty(t *testing.T) {
	assert.Equal(t, "title_exists: true", whereClause("", SearchOptions{}))
}
