package jwks

import "encoding/pem"

// DER tag bytes used by the SubjectPublicKeyInfo layout.
const (
	tagInteger   = 0x02
	tagBitString = 0x03
	tagSequence  = 0x30
)

// rsaAlgorithmIdentifier is the DER encoding of the AlgorithmIdentifier
// SEQUENCE for rsaEncryption: OID 1.2.840.113549.1.1.1 followed by a
// NULL parameter.
var rsaAlgorithmIdentifier = []byte{
	0x30, 0x0d,
	0x06, 0x09, 0x2a, 0x86, 0x48, 0x86, 0xf7, 0x0d, 0x01, 0x01, 0x01,
	0x05, 0x00,
}

// derLength encodes a DER length field. Values below 128 use the short
// form, a single byte equal to the value. Larger values use the long
// form: a byte with the top bit set whose low bits count the following
// big-endian length bytes, e.g. 200 encodes as {0x81, 0xC8}.
func derLength(n int) []byte {
	if n < 0x80 {
		return []byte{byte(n)}
	}
	var length []byte
	for v := n; v > 0; v >>= 8 {
		length = append([]byte{byte(v)}, length...)
	}
	return append([]byte{0x80 | byte(len(length))}, length...)
}

// derInteger encodes a big-endian unsigned integer as a DER INTEGER.
// Redundant leading zero bytes are stripped, then a single zero byte
// is prefixed when the most-significant bit of the first byte is set
// so the two's-complement reading stays non-negative.
func derInteger(value []byte) []byte {
	for len(value) > 1 && value[0] == 0 {
		value = value[1:]
	}
	if len(value) == 0 {
		value = []byte{0}
	}
	if value[0]&0x80 != 0 {
		value = append([]byte{0}, value...)
	}

	out := []byte{tagInteger}
	out = append(out, derLength(len(value))...)
	return append(out, value...)
}

// derSequence wraps the concatenation of elements in a DER SEQUENCE.
func derSequence(elements ...[]byte) []byte {
	var body []byte
	for _, element := range elements {
		body = append(body, element...)
	}
	out := []byte{tagSequence}
	out = append(out, derLength(len(body))...)
	return append(out, body...)
}

// derBitString wraps content in a DER BIT STRING with a leading
// "0 unused bits" byte.
func derBitString(content []byte) []byte {
	body := make([]byte, 0, len(content)+1)
	body = append(body, 0x00)
	body = append(body, content...)

	out := []byte{tagBitString}
	out = append(out, derLength(len(body))...)
	return append(out, body...)
}

// encodePublicKeyPEM builds the DER SubjectPublicKeyInfo structure for
// an RSA public key from its raw big-endian modulus and exponent bytes
// and wraps it in a PEM block:
//
//	SEQUENCE {
//	    SEQUENCE { OID rsaEncryption, NULL }
//	    BIT STRING { SEQUENCE { INTEGER n, INTEGER e } }
//	}
func encodePublicKeyPEM(modulus, exponent []byte) string {
	rsaPublicKey := derSequence(derInteger(modulus), derInteger(exponent))
	spki := derSequence(rsaAlgorithmIdentifier, derBitString(rsaPublicKey))
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: spki}))
}
