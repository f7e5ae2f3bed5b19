package render

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"time"
)

const defaultConverterURL = "http://localhost:3000"

// PDFConverter turns a .docx into a PDF. The production implementation posts
// to a Gotenberg-compatible LibreOffice converter; tests substitute a stub.
type PDFConverter interface {
	Convert(ctx context.Context, docxBytes []byte) ([]byte, error)
}

// GotenbergConverter posts the document to a Gotenberg LibreOffice route and
// returns the converted PDF bytes.
type GotenbergConverter struct {
	BaseURL string
	Client  *http.Client
}

// NewPDFConverter builds the converter from PDF_CONVERTER_URL, falling back
// to a local default.
func NewPDFConverter() *GotenbergConverter {
	base := os.Getenv("PDF_CONVERTER_URL")
	if base == "" {
		base = defaultConverterURL
	}
	return &GotenbergConverter{
		BaseURL: base,
		Client:  &http.Client{Timeout: 60 * time.Second},
	}
}

func (g *GotenbergConverter) Convert(ctx context.Context, docxBytes []byte) ([]byte, error) {
	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("files", "input.docx")
	if err != nil {
		return nil, fmt.Errorf("build convert form: %w", err)
	}
	if _, err := part.Write(docxBytes); err != nil {
		return nil, fmt.Errorf("write docx to form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finalize convert form: %w", err)
	}

	url := g.BaseURL + "/forms/libreoffice/convert"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("build convert request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("convert docx to pdf: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("pdf converter returned status %d: %s", resp.StatusCode, string(respBody))
	}

	pdfBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pdf response: %w", err)
	}
	return pdfBytes, nil
}
