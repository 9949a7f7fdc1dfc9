package security

// Wipe overwrites a secret buffer with zeros once it is no longer needed.
func Wipe(secret []byte) {
	for i := range secret {
		secret[i] = 0
	}
}
