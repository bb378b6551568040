package apispec

import (
	"html/template"
	"net/http"
)

var docsTemplate = template.Must(template.New("docs").Parse(docsHTML))

type docsPage struct {
	Title   string
	SpecURL string
}

// DocsHandler serves an interactive documentation page (Stoplight Elements)
// that loads the document from specURL.
func (s *Spec) DocsHandler(specURL string) http.Handler {
	page := docsPage{Title: s.info.Title, SpecURL: specURL}
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		//nolint:errcheck,gosec // best-effort template render
		docsTemplate.Execute(w, page)
	})
}

const docsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
  <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
</head>
<body>
  <elements-api
    apiDescriptionUrl="{{.SpecURL}}"
    router="hash"
    layout="sidebar"
  />
</body>
</html>`
