package testkit

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertStatusCode(t *testing.T, s *Scenario, got int) {
	t.Helper()
	assert.Equal(t, s.ExpectedCode, got, "[%s] HTTP status code mismatch", s.Name)
}

// AssertJSONBody compares both documents after decoding, so key order and
// whitespace never matter.
func AssertJSONBody(t *testing.T, s *Scenario, expected, actual []byte) {
	t.Helper()
	assert.JSONEq(t, string(expected), string(actual), "[%s] response body mismatch", s.Name)
}

// AssertFields checks ExpectedFields against a JSON object response.
func AssertFields(t *testing.T, s *Scenario, actual []byte) {
	t.Helper()
	var obj map[string]interface{}
	if !assert.NoError(t, json.Unmarshal(actual, &obj), "[%s] response is not a JSON object: %s", s.Name, actual) {
		return
	}
	for key, want := range s.ExpectedFields {
		got, ok := obj[key]
		if !assert.True(t, ok, "[%s] response has no %q", s.Name, key) {
			continue
		}
		assert.Equal(t, normalise(want), normalise(got), "[%s] field %q", s.Name, key)
	}
}

// AssertLength checks ExpectedLength against a JSON array response.
func AssertLength(t *testing.T, s *Scenario, actual []byte) {
	t.Helper()
	var arr []json.RawMessage
	if !assert.NoError(t, json.Unmarshal(actual, &arr), "[%s] response is not a JSON array: %s", s.Name, actual) {
		return
	}
	assert.Len(t, arr, *s.ExpectedLength, "[%s] array length", s.Name)
}

// normalise round-trips v through JSON so numbers compare as float64 on
// both sides.
func normalise(v interface{}) interface{} {
	b, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return v
	}
	return out
}
