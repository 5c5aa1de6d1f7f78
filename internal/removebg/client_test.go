package removebg

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientRemoveSuccess(t *testing.T) {
	input := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 1, 2, 3}
	output := []byte("processed-png-bytes")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/v1.0/removebg" {
			t.Errorf("path = %s, want /v1.0/removebg", r.URL.Path)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q, want %q", got, "test-key")
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		decoded, err := base64.StdEncoding.DecodeString(r.PostForm.Get("image_file_b64"))
		if err != nil {
			t.Fatalf("decode image_file_b64: %v", err)
		}
		if string(decoded) != string(input) {
			t.Error("submitted image does not match input bytes")
		}
		if r.PostForm.Get("size") != "auto" || r.PostForm.Get("type") != "auto" {
			t.Error("expected size=auto and type=auto")
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(output)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	got, err := c.Remove(context.Background(), input)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if string(got) != string(output) {
		t.Errorf("got %q, want %q", got, output)
	}
}

func TestClientRemoveAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"title":"Invalid image","detail":"Could not identify image format","code":"invalid_image"}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	_, err := c.Remove(context.Background(), []byte("not an image"))
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Title() != "Invalid image" {
		t.Errorf("Title = %q, want %q", apiErr.Title(), "Invalid image")
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, http.StatusBadRequest)
	}
	if len(apiErr.Errors) != 1 || apiErr.Errors[0].Detail != "Could not identify image format" {
		t.Errorf("full error detail not preserved: %+v", apiErr.Errors)
	}
}

func TestClientRemoveMalformedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL)
	_, err := c.Remove(context.Background(), []byte("img"))

	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if apiErr.Title() != "An unexpected error occurred." {
		t.Errorf("Title = %q, want generic fallback", apiErr.Title())
	}
}
