package domain

import (
	"fmt"
)

// Envelope is the self-contained encrypted container stored for every artifact.
//
// The serialized form is Salt ‖ IV ‖ Ciphertext with no length prefixes or version
// byte: the sizes of the first two fields are fixed and the ciphertext runs to the
// end of the buffer.
type Envelope struct {
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// ParseEnvelope splits a serialized envelope into its parts.
//
// Returns ErrMalformedEnvelope if the input is shorter than HeaderSize or if the
// ciphertext part is not a multiple of BlockSize. A header with no ciphertext is
// well-formed here; it fails later, at unpadding. The returned slices alias the input.
func ParseEnvelope(data []byte) (Envelope, error) {
	if len(data) < HeaderSize {
		return Envelope{}, fmt.Errorf("%w: %d bytes is shorter than the %d byte header",
			ErrMalformedEnvelope, len(data), HeaderSize)
	}

	body := len(data) - HeaderSize
	if body%BlockSize != 0 {
		return Envelope{}, fmt.Errorf("%w: ciphertext length %d is not a multiple of %d",
			ErrMalformedEnvelope, body, BlockSize)
	}

	return Envelope{
		Salt:       data[:SaltSize],
		IV:         data[SaltSize:HeaderSize],
		Ciphertext: data[HeaderSize:],
	}, nil
}

// Bytes serializes the envelope into a freshly allocated buffer.
func (e Envelope) Bytes() []byte {
	out := make([]byte, 0, len(e.Salt)+len(e.IV)+len(e.Ciphertext))
	out = append(out, e.Salt...)
	out = append(out, e.IV...)
	out = append(out, e.Ciphertext...)
	return out
}
