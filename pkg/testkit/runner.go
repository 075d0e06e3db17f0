package testkit

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// Tokens maps a scenario's "as" name to a bearer token.
type Tokens map[string]string

// RunFile loads the scenarios at path and runs them in order as subtests.
// A failing step does not stop the following ones.
func RunFile(t *testing.T, handler http.Handler, path string, tokens Tokens) {
	t.Helper()

	scenarios, err := LoadScenarios(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			Run(t, handler, s, tokens)
		})
	}
}

// Run fires a single scenario and checks the response.
func Run(t *testing.T, handler http.Handler, s *Scenario, tokens Tokens) {
	t.Helper()

	var body io.Reader
	if len(s.RequestBody) > 0 {
		body = bytes.NewReader(s.RequestBody)
	}
	req := httptest.NewRequest(s.RequestMethod, s.RequestURL, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.As != "" {
		token, ok := tokens[s.As]
		if !ok {
			t.Fatalf("[%s] no token for %q", s.Name, s.As)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	if len(s.ExpectedBody) > 0 {
		AssertJSONBody(t, s, s.ExpectedBody, rec.Body.Bytes())
	}
	if len(s.ExpectedFields) > 0 {
		AssertFields(t, s, rec.Body.Bytes())
	}
	if s.ExpectedLength != nil {
		AssertLength(t, s, rec.Body.Bytes())
	}
}
