package render

import (
	"fmt"
	"regexp"
	"strings"
)

var styleBlockRe = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)

// IsCompleteDocument reports whether content is already a standalone HTML
// page. Detection matches the trimmed, lowercased prefix only; anything else
// is treated as a fragment and wrapped.
func IsCompleteDocument(content string) bool {
	s := strings.ToLower(strings.TrimSpace(content))
	return strings.HasPrefix(s, "<!doctype") || strings.HasPrefix(s, "<html")
}

// WrapHTML produces a print-ready standalone page. Complete documents pass
// through byte-identical; fragments get the A4 shell, with any <style> blocks
// inside the fragment hoisted into the head so they are not dropped.
func WrapHTML(content, title string) string {
	if IsCompleteDocument(content) {
		return content
	}

	var hoisted strings.Builder
	for _, m := range styleBlockRe.FindAllStringSubmatch(content, -1) {
		hoisted.WriteString(m[1])
		hoisted.WriteString("\n")
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="vi">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    %s
    body {
      font-family: "Times New Roman", serif;
      font-size: 13pt;
      line-height: 1.6;
      color: #000;
      max-width: 210mm;
      margin: 0 auto;
      padding: 40px;
    }
    * {
      box-sizing: border-box;
    }
    p {
      margin: 0.5em 0;
    }
    table {
      border-collapse: collapse;
      width: 100%%;
      margin: 1em 0;
    }
    td, th {
      border: 1px solid #000;
      padding: 8px;
      text-align: left;
    }
    strong {
      font-weight: bold;
    }
    em {
      font-style: italic;
    }
    u {
      text-decoration: underline;
    }
    @media print {
      body {
        margin: 0;
        padding: 20mm;
      }
      @page {
        size: A4;
        margin: 0;
      }
    }
  </style>
</head>
<body>
  %s
</body>
</html>`, escapeHTMLText(title), hoisted.String(), content)
}

func escapeHTMLText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
