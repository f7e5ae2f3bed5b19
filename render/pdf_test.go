package render

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGotenbergConverterPostsMultipart(t *testing.T) {
	var gotPath, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, _, err := r.FormFile("files"); err != nil {
			http.Error(w, "missing files part", http.StatusBadRequest)
			return
		}
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	conv := &GotenbergConverter{BaseURL: srv.URL, Client: srv.Client()}
	pdf, err := conv.Convert(context.Background(), []byte("docx bytes"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if string(pdf) != "%PDF-1.4 fake" {
		t.Errorf("unexpected pdf bytes: %q", pdf)
	}
	if gotPath != "/forms/libreoffice/convert" {
		t.Errorf("posted to %s", gotPath)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("content type = %s", gotContentType)
	}
}

func TestGotenbergConverterErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conversion failed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	conv := &GotenbergConverter{BaseURL: srv.URL, Client: srv.Client()}
	if _, err := conv.Convert(context.Background(), []byte("x")); err == nil {
		t.Fatal("expected error on non-200 response")
	} else if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error should carry status: %v", err)
	}
}

func TestGotenbergConverterHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("%PDF"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	conv := &GotenbergConverter{BaseURL: srv.URL, Client: srv.Client()}
	if _, err := conv.Convert(ctx, []byte("x")); err == nil {
		t.Fatal("expected context deadline error")
	}
}
