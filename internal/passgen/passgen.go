// Package passgen generates random passwords for new vault items.
package passgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

const (
	MinLength     = 8
	MaxLength     = 64
	DefaultLength = 16
)

const (
	lowerLetters = "abcdefghijklmnopqrstuvwxyz"
	upperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits       = "0123456789"
	symbols      = "!@#$%^&*()_+[]{}|;:,.<>?"

	// lookalikes are dropped from every class unless explicitly allowed.
	lookalikes = "iloILO01"
)

var ErrInvalidLength = errors.New("password length out of range")

// Options selects the alphabet of a generated password. Letters of both
// cases are always included.
type Options struct {
	Length          int
	Digits          bool
	Symbols         bool
	AllowLookalikes bool
}

// DefaultOptions matches the generator's initial state in the UI.
func DefaultOptions() Options {
	return Options{
		Length:  DefaultLength,
		Digits:  true,
		Symbols: true,
	}
}

// Generator draws characters from a random source.
type Generator struct {
	random io.Reader
}

// New returns a Generator backed by crypto/rand.
func New() *Generator {
	return &Generator{random: rand.Reader}
}

// Generate returns a password built from opts. Characters are selected
// uniformly from the alphabet.
func (g *Generator) Generate(opts Options) (string, error) {
	if opts.Length < MinLength || opts.Length > MaxLength {
		return "", fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidLength, opts.Length, MinLength, MaxLength)
	}

	alphabet := Alphabet(opts)
	limit := big.NewInt(int64(len(alphabet)))

	var b strings.Builder
	b.Grow(opts.Length)
	for i := 0; i < opts.Length; i++ {
		n, err := rand.Int(g.random, limit)
		if err != nil {
			return "", fmt.Errorf("error reading random source: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}

	return b.String(), nil
}

// Generate is New().Generate(opts).
func Generate(opts Options) (string, error) {
	return New().Generate(opts)
}

// Alphabet returns the characters a password generated with opts may
// contain.
func Alphabet(opts Options) string {
	set := lowerLetters + upperLetters
	if opts.Digits {
		set += digits
	}
	if opts.Symbols {
		set += symbols
	}
	if opts.AllowLookalikes {
		return set
	}

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(lookalikes, r) {
			return -1
		}
		return r
	}, set)
}
