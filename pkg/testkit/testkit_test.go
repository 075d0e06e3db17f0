package testkit_test

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/testkit"
)

func itemsHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"name":"a"},{"name":"b"}]`))
		case http.MethodPost:
			var in map[string]string
			_ = json.NewDecoder(r.Body).Decode(&in)
			in["owner"] = r.Header.Get("Authorization")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(in)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail":"nope"}`))
		}
	})
}

func TestRunFile(t *testing.T) {
	testkit.RunFile(t, itemsHandler(), "testdata/items.json", testkit.Tokens{"alice": "token-a"})
}

func TestLoadScenariosValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name":"x","requestUrl":"/"}]`), 0o600))

	_, err := testkit.LoadScenarios(path)
	assert.ErrorContains(t, err, "expectedCode is required")

	_, err = testkit.LoadScenarios(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadScenariosDefaultsMethod(t *testing.T) {
	scenarios, err := testkit.LoadScenarios("testdata/items.json")
	require.NoError(t, err)
	assert.Equal(t, "GET", scenarios[0].RequestMethod)
	assert.Equal(t, "POST", scenarios[1].RequestMethod)
}
