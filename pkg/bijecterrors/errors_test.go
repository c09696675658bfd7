package bijecterrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkoo/bijectgen/pkg/bijecterrors"
)

func TestUnmatchedMessage(t *testing.T) {
	err := bijecterrors.Unmatched("Suit", 42)
	assert.Equal(t, "bijectgen: converting Suit: 42: unmatched value", err.Error())
}

func TestUnmatchedIs(t *testing.T) {
	err := bijecterrors.Unmatched("Suit", 42)
	assert.ErrorIs(t, err, bijecterrors.ErrUnmatched)
}

func TestUnmatchedWrapped(t *testing.T) {
	err := fmt.Errorf("recovered: %w", bijecterrors.Unmatched("Farbe", "x"))
	assert.ErrorIs(t, err, bijecterrors.ErrUnmatched)
}

func TestUnmatchedNotGenericError(t *testing.T) {
	assert.False(t, errors.Is(errors.New("unmatched value"), bijecterrors.ErrUnmatched))
}
