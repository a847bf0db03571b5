// Package security holds the primitives used to authenticate webhook callers.
package security

import "crypto/subtle"

// TimingSafeEqual compares two secrets in constant time. Different lengths never match.
func TimingSafeEqual(a, b string) bool {
	if len(a) != len(b) {
		// ainda percorre a entrada para não vazar o tamanho pelo tempo de resposta
		subtle.ConstantTimeCompare([]byte(a), []byte(a))
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
