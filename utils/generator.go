package utils

import (
	"math/rand"
	"sync"
	"time"
)

const codeAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"

var (
	randMu     sync.Mutex
	seededRand = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// RandomCode returns length characters from an alphabet without look-alike glyphs.
func RandomCode(length int) string {
	randMu.Lock()
	defer randMu.Unlock()

	b := make([]byte, length)
	for i := range b {
		b[i] = codeAlphabet[seededRand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
