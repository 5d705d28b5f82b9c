package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mortar/internal/core/domain"
)

func TestInternedString(t *testing.T) {
	a := domain.NewInternedString("main.cpp")
	b := domain.NewInternedString("main.cpp")
	c := domain.NewInternedString("board.cpp")

	// Equal strings intern to the same handle, distinct ones do not.
	assert.Equal(t, a.Handle(), b.Handle())
	assert.NotEqual(t, a.Handle(), c.Handle())

	assert.Equal(t, "main.cpp", a.String())
	assert.Equal(t, "board.cpp", c.String())
}

func TestInternedString_ZeroValue(t *testing.T) {
	var is domain.InternedString
	assert.Empty(t, is.String())
}

func TestInternedString_TextRoundTrip(t *testing.T) {
	type record struct {
		Target domain.InternedString `json:"target"`
	}

	data, err := json.Marshal(record{Target: domain.NewInternedString("noob")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"target":"noob"}`, string(data))

	var got record
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "noob", got.Target.String())
}
