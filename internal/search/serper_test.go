package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSerperSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if got := r.Header.Get("X-API-KEY"); got != "test-key" {
			t.Errorf("Unexpected API key header: %s", got)
		}
		var req map[string]any
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Decode request: %v", err)
		}
		if req["q"] != "Ada Lovelace" {
			t.Errorf("Unexpected query: %v", req["q"])
		}
		if req["num"] != float64(5) {
			t.Errorf("Unexpected num: %v", req["num"])
		}
		_, _ = fmt.Fprint(w, `{"organic":[
			{"title":"Ada Lovelace - Wikipedia","link":"https://en.wikipedia.org/wiki/Ada_Lovelace","snippet":"English mathematician"},
			{"title":"Biography","link":"https://www.biography.com/ada","snippet":"Born 1815"}
		]}`)
	}))
	defer server.Close()

	client := NewSerperClient("test-key", server.URL, 5)
	results, err := client.Search(context.Background(), "Ada Lovelace")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Link != "https://en.wikipedia.org/wiki/Ada_Lovelace" {
		t.Errorf("Unexpected first link: %s", results[0].Link)
	}
}

func TestSerperSearchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprint(w, `{"message":"invalid key"}`)
	}))
	defer server.Close()

	client := NewSerperClient("bad-key", server.URL, 5)
	_, err := client.Search(context.Background(), "anything")
	if err == nil {
		t.Fatal("Expected error for 403, got nil")
	}
}

func TestSerperSearchMissingKey(t *testing.T) {
	client := NewSerperClient("", "http://unused.invalid", 5)
	_, err := client.Search(context.Background(), "anything")
	if err == nil {
		t.Fatal("Expected error for missing API key")
	}
}
