package selftest

import (
	"fmt"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
	"github.com/TheMichaelB/cryptokat/internal/models"
)

// Kind selects the executor for a test.
type Kind int

const (
	KindBlockCipher Kind = iota + 1
	KindAES
	KindSkcipher
	KindAEAD
	KindHash
	KindSHA256Library
	KindDRBG
)

func (k Kind) String() string {
	switch k {
	case KindBlockCipher:
		return "blockcipher"
	case KindAES:
		return "aes"
	case KindSkcipher:
		return "skcipher"
	case KindAEAD:
		return "aead"
	case KindHash:
		return "hash"
	case KindSHA256Library:
		return "sha256-library"
	case KindDRBG:
		return "drbg"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// AlgType is the provider type the test allocates, or 0 when the test only
// calls library functions.
func (k Kind) AlgType() crypto.AlgType {
	switch k {
	case KindBlockCipher, KindAES:
		return crypto.TypeCipher
	case KindSkcipher:
		return crypto.TypeSkcipher
	case KindAEAD:
		return crypto.TypeAEAD
	case KindHash:
		return crypto.TypeHash
	case KindDRBG:
		return crypto.TypeRNG
	default:
		return 0
	}
}

// Test binds an algorithm name to an executor and its vector.
type Test struct {
	Alg    string
	Kind   Kind
	Vector Vector
}

func (t Test) run(h *harness) error {
	if t.Vector == nil {
		return fail(t.Alg, opVector, models.ErrCodeInvalidVector, fmt.Errorf("no vector"))
	}
	if err := t.Vector.validate(); err != nil {
		return fail(t.Alg, opVector, models.ErrCodeInvalidVector, err)
	}

	switch t.Kind {
	case KindBlockCipher:
		return dispatch(h, t, testBlockCipher)
	case KindAES:
		return dispatch(h, t, testAES)
	case KindSkcipher:
		return dispatch(h, t, testSkcipher)
	case KindAEAD:
		return dispatch(h, t, testAEAD)
	case KindHash:
		return dispatch(h, t, testHash)
	case KindSHA256Library:
		return dispatch(h, t, testSHA256Library)
	case KindDRBG:
		return dispatch(h, t, testDRBG)
	default:
		return fail(t.Alg, opVector, models.ErrCodeInvalidVector, fmt.Errorf("unknown test kind %s", t.Kind))
	}
}

func dispatch[V Vector](h *harness, t Test, exec func(*harness, string, V) error) error {
	vec, ok := t.Vector.(V)
	if !ok {
		return fail(t.Alg, opVector, models.ErrCodeInvalidVector,
			fmt.Errorf("%s test needs %T, got %T", t.Kind, *new(V), t.Vector))
	}
	return exec(h, t.Alg, vec)
}

// DefaultTests returns a copy of the built-in test list, in run order.
//
// Only the default implementation of each name is tested. A primitive that
// a composite fully covers has no entry of its own (sha256 through
// hmac(sha256)), except where a separate code path exists: the AES and
// SHA-256 library functions. Both DRBG variants are tested although only the
// non prediction-resistant one answers to "stdrng".
func DefaultTests() []Test {
	tests := make([]Test, len(defaultTests))
	for i, t := range defaultTests {
		t.Vector = t.Vector.clone()
		tests[i] = t
	}
	return tests
}

var defaultTests = []Test{
	{
		Alg:  "aes",
		Kind: KindAES,
		Vector: BlockCipherVector{
			Key:        aesKey,
			Plaintext:  message[:16],
			Ciphertext: aesECBCiphertext[:16],
			BlockSize:  16,
		},
	},
	{
		Alg:  "cbc(aes)",
		Kind: KindSkcipher,
		Vector: SkcipherVector{
			Key:        aesKey,
			IV:         aesIV,
			Plaintext:  message,
			Ciphertext: aesCBCCiphertext,
		},
	},
	{
		Alg:  "ctr(aes)",
		Kind: KindSkcipher,
		Vector: SkcipherVector{
			Key:        aesKey,
			IV:         aesIV,
			Plaintext:  message,
			Ciphertext: aesCTRCiphertext,
		},
	},
	{
		Alg:  "ecb(aes)",
		Kind: KindSkcipher,
		Vector: SkcipherVector{
			Key:        aesKey,
			Plaintext:  message,
			Ciphertext: aesECBCiphertext,
		},
	},
	{
		Alg:  "gcm(aes)",
		Kind: KindAEAD,
		Vector: AEADVector{
			Key:        aesKey,
			IV:         aesIV[:12],
			Assoc:      aesGCMAssoc,
			Plaintext:  message,
			Ciphertext: aesGCMCiphertext,
		},
	},
	{
		Alg:  "xts(aes)",
		Kind: KindSkcipher,
		Vector: SkcipherVector{
			Key:        aesXTSKey,
			IV:         aesXTSIV,
			Plaintext:  message,
			Ciphertext: aesXTSCiphertext,
		},
	},
	{
		Alg:    "sha1",
		Kind:   KindHash,
		Vector: HashVector{Message: message, Digest: sha1Digest},
	},
	{
		Alg:    "sha256",
		Kind:   KindSHA256Library,
		Vector: HashVector{Message: message, Digest: sha256Digest},
	},
	{
		Alg:    "hmac(sha256)",
		Kind:   KindHash,
		Vector: HashVector{Key: hmacKey, Message: message, Digest: hmacSHA256Digest},
	},
	{
		Alg:    "sha512",
		Kind:   KindHash,
		Vector: HashVector{Message: message, Digest: sha512Digest},
	},
	{
		Alg:    "sha3-256",
		Kind:   KindHash,
		Vector: HashVector{Message: message, Digest: sha3Digest},
	},
	{
		Alg:    "drbg_nopr_hmac_sha256",
		Kind:   KindDRBG,
		Vector: drbgNoPRVector,
	},
	{
		Alg:    "drbg_pr_hmac_sha256",
		Kind:   KindDRBG,
		Vector: drbgPRVector,
	},
}
