package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
)

var (
	templateCache   = map[string][]byte{}
	templateCacheMu sync.RWMutex
)

// CacheTemplate stores a template's bytes under its id so repeated document
// generation does not re-read the upload from disk.
func CacheTemplate(id string, data []byte) {
	templateCacheMu.Lock()
	templateCache[id] = data
	templateCacheMu.Unlock()
}

// CachedTemplate returns the cached bytes for id, if present.
func CachedTemplate(id string) ([]byte, bool) {
	templateCacheMu.RLock()
	defer templateCacheMu.RUnlock()
	b, ok := templateCache[id]
	return b, ok
}

// EvictTemplate drops a cached template, used when the upload is replaced.
func EvictTemplate(id string) {
	templateCacheMu.Lock()
	delete(templateCache, id)
	templateCacheMu.Unlock()
}

// MergeWordTemplate substitutes {{key}} tokens inside an uploaded .docx.
// It rewrites word/document.xml plus any header and footer parts, copying
// every other zip entry through untouched. Word often splits a typed token
// across runs; the run-boundary markers are stripped before substitution so
// {{contract_number}} survives being typed in two halves.
func MergeWordTemplate(docxBytes []byte, values map[string]string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return nil, fmt.Errorf("read docx package: %w", err)
	}

	out := new(bytes.Buffer)
	zw := zip.NewWriter(out)
	for _, file := range zr.File {
		w, err := zw.Create(file.Name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", file.Name, err)
		}
		r, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file.Name, err)
		}

		if isMergeablePart(file.Name) {
			content, err := io.ReadAll(r)
			if err != nil {
				r.Close()
				return nil, fmt.Errorf("read %s: %w", file.Name, err)
			}
			merged := mergeXMLPart(string(content), values)
			if _, err := w.Write([]byte(merged)); err != nil {
				r.Close()
				return nil, fmt.Errorf("write %s: %w", file.Name, err)
			}
		} else {
			if _, err := io.Copy(w, r); err != nil {
				r.Close()
				return nil, fmt.Errorf("copy %s: %w", file.Name, err)
			}
		}
		r.Close()
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx package: %w", err)
	}
	return out.Bytes(), nil
}

func isMergeablePart(name string) bool {
	return name == "word/document.xml" ||
		strings.HasPrefix(name, "word/header") ||
		strings.HasPrefix(name, "word/footer")
}

func mergeXMLPart(xml string, values map[string]string) string {
	xml = strings.ReplaceAll(xml, "</w:t></w:r><w:r><w:t>", "")
	for key, val := range values {
		token := "{{" + key + "}}"
		if !strings.Contains(xml, token) {
			continue
		}
		xml = strings.ReplaceAll(xml, token, escapeXML(val))
	}
	return xml
}
