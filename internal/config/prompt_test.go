package config

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Int(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("abc\n-4\n 30 \n"), &out)

	v, err := p.Int("Enter start age", NonNegative)
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	transcript := out.String()
	assert.Equal(t, 3, strings.Count(transcript, "Enter start age: "))
	assert.Contains(t, transcript, `invalid integer "abc", please try again`)
	assert.Contains(t, transcript, "value must not be negative, got -4")
}

func TestPrompter_Float(t *testing.T) {
	var out bytes.Buffer
	p := NewPrompter(strings.NewReader("six percent\n0.06\n"), &out)

	v, err := p.Float("Enter inflation rate (decimal)", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.06, v)
	assert.Contains(t, out.String(), `invalid number "six percent"`)
}

func TestPrompter_SequentialReads(t *testing.T) {
	p := NewPrompter(strings.NewReader("30\n40\n0.05\n"), io.Discard)

	start, err := p.Int("start", nil)
	require.NoError(t, err)
	end, err := p.Int("end", nil)
	require.NoError(t, err)
	rate, err := p.Float("rate", nil)
	require.NoError(t, err)

	assert.Equal(t, 30, start)
	assert.Equal(t, 40, end)
	assert.Equal(t, 0.05, rate)
}

func TestPrompter_EOF(t *testing.T) {
	p := NewPrompter(strings.NewReader(""), io.Discard)
	_, err := p.Int("id", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestPrompter_TooManyAttempts(t *testing.T) {
	p := NewPrompter(strings.NewReader("a\nb\nc\n"), io.Discard)
	p.MaxAttempts = 2
	_, err := p.Int("id", nil)
	assert.ErrorIs(t, err, ErrTooManyAttempts)
}
