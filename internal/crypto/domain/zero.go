package domain

// Zero overwrites a byte slice with zeros. Derived keys and decrypted plaintext
// buffers are passed through it as soon as they are no longer needed.
func Zero(b []byte) {
	clear(b)
}
