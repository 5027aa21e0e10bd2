//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/pictor/pictor/internal/model"
	"github.com/pictor/pictor/internal/repository"
)

type tokenResponse struct {
	Token string `json:"token"`
}

type imageResponse struct {
	ID       string   `json:"id"`
	URL      string   `json:"url"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	Keywords []string `json:"keywords"`
}

type pageResponse struct {
	Items      []imageResponse `json:"items"`
	NextCursor *string         `json:"next_cursor"`
}

// TestE2ESmoke walks the whole surface against a running server:
// register, log in, page through a known image set, filter by keyword.
func TestE2ESmoke(t *testing.T) {
	baseURL := envOrDefault("API_BASE_URL", "http://localhost:8000")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatalf("DATABASE_URL is required for e2e tests")
	}

	a, b, c := seedThreeImages(t, dbURL)

	username := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	token := register(t, baseURL, username, "longenough")

	// Registering the same username again conflicts.
	if status := registerStatus(t, baseURL, username, "longenough"); status != http.StatusConflict {
		t.Errorf("duplicate registration: expected 409, got %d", status)
	}

	// A fresh login works with the same credentials.
	if tok := login(t, baseURL, username, "longenough"); tok == "" {
		t.Fatal("login returned an empty token")
	}

	// First page of two.
	page := listImages(t, baseURL, token, "limit=2")
	if len(page.Items) != 2 || page.Items[0].ID != a || page.Items[1].ID != b {
		t.Fatalf("unexpected first page: %+v", page.Items)
	}
	if page.NextCursor == nil || *page.NextCursor != b {
		t.Fatalf("expected next_cursor %s, got %v", b, page.NextCursor)
	}

	// Second page picks up after the cursor and exhausts the listing.
	page = listImages(t, baseURL, token, "limit=2&cursor="+b)
	if len(page.Items) != 1 || page.Items[0].ID != c {
		t.Fatalf("unexpected second page: %+v", page.Items)
	}
	if page.NextCursor != nil {
		t.Fatalf("expected null next_cursor, got %q", *page.NextCursor)
	}

	// Keyword filter matches only the middle image.
	page = listImages(t, baseURL, token, "keyword=lighthouse")
	if len(page.Items) != 1 || page.Items[0].ID != b {
		t.Fatalf("unexpected filtered page: %+v", page.Items)
	}
	if page.NextCursor != nil {
		t.Fatal("filtered listing should be exhausted")
	}

	// A bogus token never yields items.
	req, _ := http.NewRequest(http.MethodGet, baseURL+"/api/images", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for a bogus token, got %d", resp.StatusCode)
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// seedThreeImages replaces the image collection with three images in a
// known order and returns their ids, ascending.
func seedThreeImages(t *testing.T, dbURL string) (string, string, string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer repo.Close()

	if err := repo.DeleteAllImages(ctx); err != nil {
		t.Fatalf("clear images: %v", err)
	}

	keywords := [][]string{
		{"harbor"},
		{"lighthouse"},
		{"harbor", "dusk"},
	}

	images := make([]*model.Image, 3)
	now := time.Now().UTC()
	for i := range images {
		images[i] = &model.Image{
			ID:        ulid.Make().String(),
			URL:       fmt.Sprintf("https://placehold.co/400x30%d", i),
			Width:     400,
			Height:    300 + i,
			Keywords:  keywords[i],
			CreatedAt: now,
		}
	}

	if err := repo.InsertImages(ctx, images); err != nil {
		t.Fatalf("insert images: %v", err)
	}

	return images[0].ID, images[1].ID, images[2].ID
}

func register(t *testing.T, baseURL, username, password string) string {
	t.Helper()
	tok, status := authenticate(t, baseURL, "/api/auth/register", username, password)
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", status)
	}
	return tok
}

func registerStatus(t *testing.T, baseURL, username, password string) int {
	t.Helper()
	_, status := authenticate(t, baseURL, "/api/auth/register", username, password)
	return status
}

func login(t *testing.T, baseURL, username, password string) string {
	t.Helper()
	tok, status := authenticate(t, baseURL, "/api/auth/login", username, password)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	return tok
}

func authenticate(t *testing.T, baseURL, path, username, password string) (string, int) {
	t.Helper()

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := http.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("%s request failed: %v", path, err)
	}
	defer resp.Body.Close()

	var tok tokenResponse
	_ = json.NewDecoder(resp.Body).Decode(&tok)
	return tok.Token, resp.StatusCode
}

func listImages(t *testing.T, baseURL, token, query string) pageResponse {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/api/images?"+query, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", resp.StatusCode)
	}

	var page pageResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	return page
}
