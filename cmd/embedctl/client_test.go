package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embed" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["text"] != "hello" {
			t.Fatalf("unexpected text %q", body["text"])
		}
		_, _ = w.Write([]byte(`{"embedding":[0.1],"dimension":1}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	if err := runEmbed(srv.URL, "hello", &out); err != nil {
		t.Fatalf("runEmbed: %v", err)
	}
	if !strings.Contains(out.String(), `"dimension":1`) {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestRunBatch_SendsAllTexts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string][]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if len(body["texts"]) != 2 {
			t.Fatalf("expected 2 texts, got %d", len(body["texts"]))
		}
		_, _ = w.Write([]byte(`{"embeddings":[[0.1],[0.2]],"dimension":1,"count":2}`))
	}))
	defer srv.Close()

	var out bytes.Buffer
	if err := runBatch(srv.URL, []string{"a", "b"}, &out); err != nil {
		t.Fatalf("runBatch: %v", err)
	}
}

func TestRunHealth_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream gone"))
	}))
	defer srv.Close()

	var out bytes.Buffer
	err := runHealth(srv.URL, &out)
	if err == nil || !strings.Contains(err.Error(), "http 502") {
		t.Fatalf("expected http 502 error, got %v", err)
	}
}
