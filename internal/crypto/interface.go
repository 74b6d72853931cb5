package crypto

import "errors"

// AlgType is the capability class of an algorithm implementation.
type AlgType int

const (
	TypeCipher AlgType = iota + 1
	TypeSkcipher
	TypeAEAD
	TypeHash
	TypeRNG
)

func (t AlgType) String() string {
	switch t {
	case TypeCipher:
		return "cipher"
	case TypeSkcipher:
		return "skcipher"
	case TypeAEAD:
		return "aead"
	case TypeHash:
		return "hash"
	case TypeRNG:
		return "rng"
	default:
		return "unknown"
	}
}

// Errors
var (
	ErrNotFound          = errors.New("algorithm not found")
	ErrWrongType         = errors.New("algorithm has wrong type")
	ErrInvalidKey        = errors.New("invalid key size")
	ErrNoKey             = errors.New("key not set")
	ErrKeyNotSupported   = errors.New("algorithm does not take a key")
	ErrInvalidLength     = errors.New("invalid buffer length")
	ErrInvalidIV         = errors.New("invalid IV")
	ErrInvalidAuthSize   = errors.New("invalid authentication tag size")
	ErrAuthFailed        = errors.New("message authentication failed")
	ErrNotSeeded         = errors.New("generator not seeded")
	ErrEntropyRequired   = errors.New("prediction resistance requires entropy")
	ErrEntropyNotAllowed = errors.New("generator does not accept per-request entropy")
)

// AlgInfo describes a registered implementation.
type AlgInfo struct {
	Name        string  `json:"name"`        // Generic algorithm name, e.g. "cbc(aes)"
	DriverName  string  `json:"driver_name"` // Implementation name, e.g. "cbc-aes-generic"
	Priority    int     `json:"priority"`    // Highest priority wins on lookup
	Type        AlgType `json:"type"`
	Async       bool    `json:"async"` // Completes outside the calling context
	BlockSize   int     `json:"block_size,omitempty"`
	IVSize      int     `json:"iv_size,omitempty"`
	DigestSize  int     `json:"digest_size,omitempty"`
	MaxAuthSize int     `json:"max_auth_size,omitempty"`
}

// Transform is an allocated implementation handle. Free wipes key material
// and must be called exactly once.
type Transform interface {
	Info() AlgInfo
	Free()
}

// Cipher is a single-block cipher without a mode.
type Cipher interface {
	Transform
	SetKey(key []byte) error
	Encrypt(dst, src []byte) error
	Decrypt(dst, src []byte) error
}

// Skcipher is a length-preserving cipher operating in place. The IV is
// updated in place to the chaining value for a following request.
type Skcipher interface {
	Transform
	SetKey(key []byte) error
	Encrypt(buf, iv []byte) error
	Decrypt(buf, iv []byte) error
}

// AEAD operates in place on a buffer holding plaintext followed by room for
// the tag. Associated data is authenticated but never encrypted.
type AEAD interface {
	Transform
	SetKey(key []byte) error
	SetAuthSize(size int) error
	// Encrypt seals buf[:ptLen] and writes the tag to buf[ptLen:];
	// len(buf) must equal ptLen plus the auth size.
	Encrypt(buf []byte, ptLen int, iv, assoc []byte) error
	// Decrypt opens ciphertext plus tag. On success buf[:len(buf)-authSize]
	// holds the plaintext; on failure buf is zeroed and ErrAuthFailed returned.
	Decrypt(buf []byte, iv, assoc []byte) error
}

// Hash computes one-shot digests, optionally keyed.
type Hash interface {
	Transform
	SetKey(key []byte) error
	Digest(msg []byte) ([]byte, error)
}

// RNG is a deterministic generator with test-mode entry points that take
// externally supplied entropy instead of a live source.
type RNG interface {
	Transform
	ResetTest(entropy, pers []byte) error
	// GenerateTest returns n bytes. Prediction-resistant generators require
	// entropy on every call; others reject it.
	GenerateTest(n int, addtl, entropy []byte) ([]byte, error)
}

// Provider resolves algorithm names to implementations.
type Provider interface {
	AllocCipher(name string) (Cipher, error)
	AllocSkcipher(name string) (Skcipher, error)
	AllocAEAD(name string) (AEAD, error)
	AllocHash(name string) (Hash, error)
	AllocRNG(name string) (RNG, error)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
