package apispec

import (
	"encoding/json"
	"io"
	"net/http"

	"gopkg.in/yaml.v3"
)

// WriteJSON writes the document as indented JSON to w.
func (s *Spec) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s.Document())
}

// WriteYAML writes the document as YAML to w.
func (s *Spec) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s.Document()); err != nil {
		return err
	}
	return enc.Close()
}

// JSONHandler serves the document as JSON.
func (s *Spec) JSONHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		json.NewEncoder(w).Encode(s.Document())
	})
}

// YAMLHandler serves the document as YAML.
func (s *Spec) YAMLHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck,gosec // best-effort after WriteHeader
		yaml.NewEncoder(w).Encode(s.Document())
	})
}
