package bind_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/bind"
)

type login struct {
	Username string `json:"username" validate:"required"`
}

func bindBody(body string) (login, error) {
	var dest login
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	err := bind.JSON(httptest.NewRecorder(), req, &dest)
	return dest, err
}

func status(t *testing.T, err error) *bind.Error {
	t.Helper()
	var bindErr *bind.Error
	require.True(t, errors.As(err, &bindErr), "got %v", err)
	return bindErr
}

func TestJSON(t *testing.T) {
	got, err := bindBody(`{"username":"alice"}`)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = bindBody(`{"username":`)
	assert.Equal(t, http.StatusBadRequest, status(t, err).Status)

	_, err = bindBody(``)
	bindErr := status(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, bindErr.Status)
	assert.Contains(t, bindErr.Fields, "username")
}

func TestJSONTooLarge(t *testing.T) {
	config.Set("MAX_BODY_BYTES", "16")
	t.Cleanup(func() { config.Set("MAX_BODY_BYTES", "1048576") })

	_, err := bindBody(`{"username":"` + strings.Repeat("a", 64) + `"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, status(t, err).Status)
}
