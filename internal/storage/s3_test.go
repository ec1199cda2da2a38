// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestNew_Unconfigured(t *testing.T) {
	tests := []struct {
		name                     string
		endpoint, access, secret string
	}{
		{"no endpoint", "", "a", "s"},
		{"no access key", "http://s3", "", "s"},
		{"no secret", "http://s3", "a", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.endpoint, "fsn1", tt.access, tt.secret, "decks", "")
			if err != nil || c != nil {
				t.Errorf("New() = %v, %v; want nil, nil", c, err)
			}
		})
	}

	if _, err := New("http://s3", "fsn1", "a", "s", "", ""); err == nil {
		t.Error("configured storage without bucket should fail")
	}
}

func TestFileURL(t *testing.T) {
	c, err := New("https://s3.example.com/", "fsn1", "a", "s", "decks", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.FileURL("decks/d1/x.json"); got != "https://s3.example.com/decks/decks/d1/x.json" {
		t.Errorf("FileURL = %q", got)
	}

	c, _ = New("https://s3.example.com", "fsn1", "a", "s", "decks", "https://cdn.example.com/")
	if got := c.FileURL("k.json"); got != "https://cdn.example.com/k.json" {
		t.Errorf("FileURL with CDN = %q", got)
	}
}

func TestExportKey(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 5, 7, 0, time.FixedZone("CET", 3600))
	if got := ExportKey("deck-1", at); got != "decks/deck-1/20260301T080507Z.json" {
		t.Errorf("ExportKey = %q", got)
	}
}

func TestExportDeck_PutsObject(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		ctype  string
		body   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		method, path, ctype = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c, err := New(srv.URL, "us-east-1", "AKIATEST", "secret", "decks", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	key, url, err := c.ExportDeck(context.Background(), "deck-1", []byte(`{"slides":[]}`), now)
	if err != nil {
		t.Fatalf("ExportDeck: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if method != http.MethodPut {
		t.Errorf("method = %s, want PUT", method)
	}
	if path != "/decks/"+key {
		t.Errorf("path = %s, want /decks/%s", path, key)
	}
	if ctype != "application/json" {
		t.Errorf("content type = %q", ctype)
	}
	if !strings.Contains(string(body), `{"slides":[]}`) {
		t.Errorf("body = %q", body)
	}
	if url != srv.URL+"/decks/"+key {
		t.Errorf("url = %q", url)
	}
}

func TestPresignedURL(t *testing.T) {
	c, _ := New("https://s3.example.com", "fsn1", "AKIATEST", "secret", "decks", "")
	u, err := c.PresignedURL(context.Background(), "decks/d/x.json", 15*time.Minute)
	if err != nil {
		t.Fatalf("PresignedURL: %v", err)
	}
	if !strings.HasPrefix(u, "https://s3.example.com/decks/decks/d/x.json?") || !strings.Contains(u, "X-Amz-Signature=") {
		t.Errorf("presigned url = %q", u)
	}
}
