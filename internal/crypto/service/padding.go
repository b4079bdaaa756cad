package service

import (
	"crypto/subtle"
)

// pkcs7Pad appends between 1 and blockSize bytes, each holding the pad length.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// pkcs7Unpad strips PKCS#7 padding and reports false when the padding is not well-formed.
//
// The padding bytes are compared in constant time over the whole final block.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}

	good := 1
	tail := data[len(data)-blockSize:]
	for i := blockSize - n; i < blockSize; i++ {
		good &= subtle.ConstantTimeByteEq(tail[i], byte(n))
	}
	if good != 1 {
		return nil, false
	}
	return data[:len(data)-n], true
}
