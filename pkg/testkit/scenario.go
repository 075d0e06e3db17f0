// Package testkit runs JSON-described REST scenarios against an
// http.Handler.
//
// A scenario file holds an array of steps that run in order against the
// same handler, so later steps can rely on state created by earlier ones:
//
//	[
//	  {
//	    "name": "alice places an order",
//	    "as": "alice",
//	    "requestMethod": "POST",
//	    "requestUrl": "/orders/order",
//	    "requestBody": {"quantity": 2, "pizza_size": "LARGE"},
//	    "expectedCode": 201,
//	    "expectedFields": {"order_status": "PENDING"}
//	  }
//	]
//
// "as" names the principal whose bearer token is sent; see Tokens.
package testkit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Scenario is one request and its expected response.
type Scenario struct {
	Name string `json:"name"`
	As   string `json:"as"`

	RequestMethod string            `json:"requestMethod"`
	RequestURL    string            `json:"requestUrl"`
	RequestBody   json.RawMessage   `json:"requestBody"`
	Headers       map[string]string `json:"headers"`

	ExpectedCode int `json:"expectedCode"`
	// ExpectedBody must equal the response body as JSON.
	ExpectedBody json.RawMessage `json:"expectedBody"`
	// ExpectedFields must each equal the same top-level key of a JSON
	// object response; other keys are ignored.
	ExpectedFields map[string]interface{} `json:"expectedFields"`
	// ExpectedLength is the length of a JSON array response.
	ExpectedLength *int `json:"expectedLength"`
}

// LoadScenarios reads an array of scenarios from path.
func LoadScenarios(path string) ([]*Scenario, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", path, err)
	}

	var scenarios []*Scenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", path, err)
	}
	for i, s := range scenarios {
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: %q step %d: %w", path, i, err)
		}
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	s.RequestMethod = strings.ToUpper(s.RequestMethod)
	return nil
}
