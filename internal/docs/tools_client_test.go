package docs_test

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Soubhagyabehera/easyapply/internal/config"
	"github.com/Soubhagyabehera/easyapply/internal/docs"
	"github.com/Soubhagyabehera/easyapply/internal/errors"

	"go.uber.org/zap"
)

func newToolsClient(t *testing.T, handler http.Handler) *docs.ToolsClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := &config.Config{
		ToolsAPIBaseURL: srv.URL,
		ToolsAPITimeout: 5 * time.Second,
	}
	return docs.NewToolsClient(zap.NewNop(), cfg)
}

func TestForward_PassesFilesAndParams(t *testing.T) {
	client := newToolsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pdf/compress" {
			t.Errorf("path = %q, want /pdf/compress", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("backend could not parse multipart body: %v", err)
		}
		if got := r.FormValue("quality"); got != "medium" {
			t.Errorf("quality param = %q, want medium", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("file part missing: %v", err)
		}
		defer file.Close()
		if header.Filename != "form.pdf" {
			t.Errorf("filename = %q, want form.pdf", header.Filename)
		}
		content, _ := io.ReadAll(file)
		if string(content) != "%PDF-stub" {
			t.Errorf("file content = %q", content)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("request id header missing")
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="form-compressed.pdf"`)
		w.Write([]byte("%PDF-out"))
	}))

	result, err := client.CompressPDF(context.Background(), docs.File{
		Name: "form.pdf",
		Data: strings.NewReader("%PDF-stub"),
	}, "medium")
	if err != nil {
		t.Fatalf("CompressPDF returned error: %v", err)
	}
	if result.ContentType != "application/pdf" {
		t.Errorf("ContentType = %q", result.ContentType)
	}
	if result.FileName != "form-compressed.pdf" {
		t.Errorf("FileName = %q", result.FileName)
	}
	if string(result.Body) != "%PDF-out" {
		t.Errorf("Body = %q", result.Body)
	}
}

func TestForward_UnknownTool(t *testing.T) {
	client := newToolsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unknown tool must not reach the backend")
	}))

	_, err := client.Forward(context.Background(), "blockchain", nil, nil)
	var domainErr *errors.DomainError
	if !stderrors.As(err, &domainErr) || domainErr.Type != errors.ErrTypeInvalidInput {
		t.Fatalf("Forward error = %v, want INVALID_INPUT", err)
	}
}

func TestForward_BackendFailure(t *testing.T) {
	client := newToolsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "conversion crashed", http.StatusInternalServerError)
	}))

	_, err := client.ConvertFormat(context.Background(), docs.File{
		Name: "scan.jpg",
		Data: strings.NewReader("jpeg-bytes"),
	}, "pdf")
	var domainErr *errors.DomainError
	if !stderrors.As(err, &domainErr) || domainErr.Type != errors.ErrTypeUnavailable {
		t.Fatalf("ConvertFormat error = %v, want UNAVAILABLE", err)
	}
}

func TestMergePDFs_MultipleFiles(t *testing.T) {
	client := newToolsClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := len(r.MultipartForm.File["file"]); got != 2 {
			t.Errorf("received %d file parts, want 2", got)
		}
		w.Write([]byte("%PDF-merged"))
	}))

	result, err := client.MergePDFs(context.Background(), []docs.File{
		{Name: "a.pdf", Data: strings.NewReader("%PDF-a")},
		{Name: "b.pdf", Data: strings.NewReader("%PDF-b")},
	})
	if err != nil {
		t.Fatalf("MergePDFs returned error: %v", err)
	}
	if string(result.Body) != "%PDF-merged" {
		t.Errorf("Body = %q", result.Body)
	}
}
