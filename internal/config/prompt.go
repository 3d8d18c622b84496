package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultMaxAttempts bounds how often a single prompt is repeated
const DefaultMaxAttempts = 5

// ErrTooManyAttempts is returned when a prompt receives only invalid input
var ErrTooManyAttempts = errors.New("too many invalid attempts")

// Prompter reads typed values from an interactive session, re-prompting on
// invalid input.
type Prompter struct {
	scanner     *bufio.Scanner
	out         io.Writer
	MaxAttempts int
}

// NewPrompter creates a prompter reading lines from in and writing prompts to out
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		scanner:     bufio.NewScanner(in),
		out:         out,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Int prompts until a valid integer accepted by check (if non-nil) is entered
func (p *Prompter) Int(label string, check func(int) error) (int, error) {
	var result int
	err := p.ask(label, func(raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid integer %q", raw)
		}
		if check != nil {
			if err := check(v); err != nil {
				return err
			}
		}
		result = v
		return nil
	})
	return result, err
}

// Float prompts until a valid decimal number accepted by check (if non-nil) is entered
func (p *Prompter) Float(label string, check func(float64) error) (float64, error) {
	var result float64
	err := p.ask(label, func(raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", raw)
		}
		if check != nil {
			if err := check(v); err != nil {
				return err
			}
		}
		result = v
		return nil
	})
	return result, err
}

func (p *Prompter) ask(label string, accept func(string) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	for i := 0; i < attempts; i++ {
		fmt.Fprintf(p.out, "%s: ", label)
		if !p.scanner.Scan() {
			if err := p.scanner.Err(); err != nil {
				return fmt.Errorf("read %s: %w", label, err)
			}
			return fmt.Errorf("read %s: %w", label, io.ErrUnexpectedEOF)
		}
		err := accept(strings.TrimSpace(p.scanner.Text()))
		if err == nil {
			return nil
		}
		fmt.Fprintf(p.out, "%v, please try again\n", err)
	}
	return fmt.Errorf("%s: %w", label, ErrTooManyAttempts)
}

// NonNegative rejects negative integers
func NonNegative(v int) error {
	if v < 0 {
		return fmt.Errorf("value must not be negative, got %d", v)
	}
	return nil
}
