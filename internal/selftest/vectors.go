package selftest

import (
	"errors"
	"fmt"
)

// Practical upper bounds on sizes declared by vectors. Buffers are always
// sized from the vector itself; these only catch corrupt vector data.
const (
	maxBlockSize  = 32
	maxIVSize     = 32
	maxAuthSize   = 16
	maxDigestSize = 64
)

// Vector is one known-answer test vector. The set of variants is closed.
type Vector interface {
	validate() error
	clone() Vector
}

// BlockCipherVector holds exactly one block of plaintext and ciphertext.
type BlockCipherVector struct {
	Key        []byte
	Plaintext  []byte
	Ciphertext []byte
	BlockSize  int
}

// SkcipherVector is for length-preserving modes. IV is empty when the mode
// takes none.
type SkcipherVector struct {
	Key        []byte
	IV         []byte
	Plaintext  []byte
	Ciphertext []byte
}

// AEADVector carries ciphertext with the tag appended.
type AEADVector struct {
	Key        []byte
	IV         []byte
	Assoc      []byte
	Plaintext  []byte
	Ciphertext []byte
}

// HashVector has a nil Key for unkeyed hashes.
type HashVector struct {
	Key     []byte
	Message []byte
	Digest  []byte
}

// DRBGVector drives a reset and two generate requests. Output is the
// expected result of the second request only. EntropyPRA and EntropyPRB are
// set for prediction-resistant generators.
type DRBGVector struct {
	Entropy    []byte
	Pers       []byte
	EntropyPRA []byte
	EntropyPRB []byte
	AddtlA     []byte
	AddtlB     []byte
	Output     []byte
}

func (v BlockCipherVector) validate() error {
	if v.BlockSize <= 0 || v.BlockSize > maxBlockSize {
		return fmt.Errorf("block size %d out of range", v.BlockSize)
	}
	if len(v.Plaintext) != v.BlockSize || len(v.Ciphertext) != v.BlockSize {
		return fmt.Errorf("plaintext and ciphertext must be one %d-byte block", v.BlockSize)
	}
	return nil
}

func (v SkcipherVector) validate() error {
	if len(v.IV) > maxIVSize {
		return fmt.Errorf("IV size %d out of range", len(v.IV))
	}
	if len(v.Plaintext) == 0 || len(v.Plaintext) != len(v.Ciphertext) {
		return errors.New("plaintext and ciphertext lengths differ")
	}
	return nil
}

func (v AEADVector) validate() error {
	if len(v.IV) > maxIVSize {
		return fmt.Errorf("IV size %d out of range", len(v.IV))
	}
	if len(v.Ciphertext) <= len(v.Plaintext) {
		return errors.New("ciphertext must be longer than plaintext")
	}
	if v.TagSize() > maxAuthSize {
		return fmt.Errorf("tag size %d out of range", v.TagSize())
	}
	return nil
}

// TagSize is the authentication tag length implied by the vector.
func (v AEADVector) TagSize() int {
	return len(v.Ciphertext) - len(v.Plaintext)
}

func (v HashVector) validate() error {
	if len(v.Digest) == 0 || len(v.Digest) > maxDigestSize {
		return fmt.Errorf("digest size %d out of range", len(v.Digest))
	}
	return nil
}

func (v DRBGVector) validate() error {
	if len(v.Entropy) == 0 {
		return errors.New("missing entropy")
	}
	if len(v.AddtlA) != len(v.AddtlB) {
		return errors.New("additional input strings differ in length")
	}
	if len(v.EntropyPRA) != len(v.EntropyPRB) {
		return errors.New("prediction resistance entropy strings differ in length")
	}
	if len(v.Output) == 0 {
		return errors.New("missing expected output")
	}
	return nil
}

// PredictionResistant reports whether each request injects fresh entropy.
func (v DRBGVector) PredictionResistant() bool {
	return len(v.EntropyPRA) > 0
}

func (v BlockCipherVector) clone() Vector {
	v.Key, v.Plaintext, v.Ciphertext = dup(v.Key), dup(v.Plaintext), dup(v.Ciphertext)
	return v
}

func (v SkcipherVector) clone() Vector {
	v.Key, v.IV = dup(v.Key), dup(v.IV)
	v.Plaintext, v.Ciphertext = dup(v.Plaintext), dup(v.Ciphertext)
	return v
}

func (v AEADVector) clone() Vector {
	v.Key, v.IV, v.Assoc = dup(v.Key), dup(v.IV), dup(v.Assoc)
	v.Plaintext, v.Ciphertext = dup(v.Plaintext), dup(v.Ciphertext)
	return v
}

func (v HashVector) clone() Vector {
	v.Key, v.Message, v.Digest = dup(v.Key), dup(v.Message), dup(v.Digest)
	return v
}

func (v DRBGVector) clone() Vector {
	v.Entropy, v.Pers = dup(v.Entropy), dup(v.Pers)
	v.EntropyPRA, v.EntropyPRB = dup(v.EntropyPRA), dup(v.EntropyPRB)
	v.AddtlA, v.AddtlB, v.Output = dup(v.AddtlA), dup(v.AddtlB), dup(v.Output)
	return v
}

// dup copies b, preserving nil.
func dup(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
