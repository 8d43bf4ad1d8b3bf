// Package tracking generates customer-facing order references.
//
// A code doubles as the payment reference sent to the gateway, so it must stay
// short and URL safe. Uniqueness is not checked here; the orders table carries
// a unique index and a collision surfaces as an insert error.
package tracking

import (
	"math/rand/v2"
	"regexp"
)

const (
	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// Length of every generated code
	Length = 15
)

var shape = regexp.MustCompile(`^[A-Za-z0-9]{15}$`)

// NewCode returns a random 15-character alphanumeric code
func NewCode() string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = alphabet[rand.IntN(len(alphabet))]
	}
	return string(b)
}

// Valid reports whether code has the shape of a generated code
func Valid(code string) bool {
	return shape.MatchString(code)
}
