package errors

import (
	"net/http"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNewRequestError(t *testing.T) {
	t.Run("keeps short bodies intact", func(t *testing.T) {
		err := NewRequestError(http.MethodGet, "/memory/list", http.StatusBadGateway, []byte("upstream down"))

		assert.Equal(t, http.StatusBadGateway, err.Status)
		assert.Equal(t, "upstream down", err.Snippet)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("truncates long bodies to 200 characters", func(t *testing.T) {
		err := NewRequestError(http.MethodGet, "/memory/list", http.StatusInternalServerError, []byte(strings.Repeat("x", 500)))

		assert.Equal(t, 200, utf8.RuneCountInString(err.Snippet))
	})

	t.Run("never splits a multibyte rune", func(t *testing.T) {
		err := NewRequestError(http.MethodGet, "/memory/list", http.StatusInternalServerError, []byte(strings.Repeat("é", 300)))

		assert.Equal(t, 200, utf8.RuneCountInString(err.Snippet))
		assert.True(t, utf8.ValidString(err.Snippet))
	})
}
