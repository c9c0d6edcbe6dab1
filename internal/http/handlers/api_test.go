package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestAPIListChats_PaginationEnvelope(t *testing.T) {
	r, _ := newPageRouter(t, stubGateway{reply: "x"})

	for _, name := range []string{"a", "b", "c"} {
		if w := postForm(r, url.Values{"food_name": {name}}); w.Code != http.StatusSeeOther {
			t.Fatalf("seed submit -> %d", w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chats?page=1&page_size=2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/chats -> %d", w.Code)
	}

	var resp ListChatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(resp.Chats) != 2 {
		t.Fatalf("expected 2 chats, got %d", len(resp.Chats))
	}
	// Newest first: ids 3, 2 on the first page.
	if resp.Chats[0].ID != 3 || resp.Chats[1].ID != 2 {
		t.Fatalf("expected ids [3 2], got [%d %d]", resp.Chats[0].ID, resp.Chats[1].ID)
	}
	p := resp.Pagination
	if p.Total != 3 || p.TotalPages != 2 || !p.HasNext || p.Page != 1 || p.PageSize != 2 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
}

func TestAPIListChats_ClampsParams(t *testing.T) {
	r, _ := newPageRouter(t, stubGateway{reply: "x"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chats?page=-4&page_size=9999", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/chats -> %d", w.Code)
	}
	var resp ListChatsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Pagination.Page != 1 || resp.Pagination.PageSize != 100 {
		t.Fatalf("expected clamped page=1 page_size=100, got %+v", resp.Pagination)
	}
}

func TestAPIGetChat_Found(t *testing.T) {
	r, _ := newPageRouter(t, stubGateway{reply: "granola bowl"})

	if w := postForm(r, url.Values{"food_name": {"Granola"}}); w.Code != http.StatusSeeOther {
		t.Fatalf("seed submit -> %d", w.Code)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chats/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/chats/1 -> %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["food_name"] != "granola" || body["result"] != "granola bowl" {
		t.Fatalf("unexpected record: %v", body)
	}
}

func TestAPIGetChat_Errors(t *testing.T) {
	r, _ := newPageRouter(t, stubGateway{reply: "x"})

	// Not found -> 404 envelope
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chats/42", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if er.Code != ErrCodeNotFound {
		t.Fatalf("expected code %q, got %q", ErrCodeNotFound, er.Code)
	}

	// Malformed id -> 400 envelope
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/chats/xyz", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if er.Code != ErrCodeBadRequest {
		t.Fatalf("expected code %q, got %q", ErrCodeBadRequest, er.Code)
	}
}
