package selftest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
	"github.com/TheMichaelB/cryptokat/internal/models"
)

func TestVerifierCheck(t *testing.T) {
	expected := []byte{0x01, 0x02, 0x03}

	tests := []struct {
		name      string
		brokenAlg string
		alg       string
		actual    []byte
		wantKind  models.ErrorKind
	}{
		{"match", "", "sha1", []byte{0x01, 0x02, 0x03}, ""},
		{"mismatch", "", "sha1", []byte{0x01, 0x02, 0x04}, models.ErrCodeMismatch},
		{"length differs", "", "sha1", []byte{0x01, 0x02}, models.ErrCodeInvalidVector},
		{"broken alg corrupts", "sha1", "sha1", []byte{0x01, 0x02, 0x03}, models.ErrCodeMismatch},
		{"other alg untouched", "sha512", "sha1", []byte{0x01, 0x02, 0x03}, ""},
		{"prefix does not match", "sha", "sha1", []byte{0x01, 0x02, 0x03}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := verifier{brokenAlg: tt.brokenAlg}
			err := v.check(tt.alg, opDigest, tt.actual, expected)
			if tt.wantKind == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, models.KindOf(err))
		})
	}
}

func TestVerifierCorruptsFirstByte(t *testing.T) {
	v := verifier{brokenAlg: "aes"}
	actual := []byte{0x10, 0x20}

	err := v.check("aes", opEncrypt, actual, []byte{0x10, 0x20})
	require.Error(t, err)
	assert.Equal(t, []byte{0xef, 0x20}, actual)
	assert.Contains(t, err.Error(), "aes encryption")
}

func TestValidateAlg(t *testing.T) {
	assert.NoError(t, validateAlg("sha1", crypto.AlgInfo{Name: "sha1", DriverName: "sha1-generic"}))

	err := validateAlg("sha1", crypto.AlgInfo{Name: "sha1", DriverName: "sha1-async", Async: true})
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrIneligible)
	assert.Contains(t, err.Error(), "sha1-async")
}

func TestVectorValidate(t *testing.T) {
	tests := []struct {
		name    string
		vec     Vector
		wantErr bool
	}{
		{"block ok", BlockCipherVector{BlockSize: 16, Plaintext: make([]byte, 16), Ciphertext: make([]byte, 16)}, false},
		{"block zero size", BlockCipherVector{}, true},
		{"block too large", BlockCipherVector{BlockSize: 64, Plaintext: make([]byte, 64), Ciphertext: make([]byte, 64)}, true},
		{"block short ciphertext", BlockCipherVector{BlockSize: 16, Plaintext: make([]byte, 16), Ciphertext: make([]byte, 15)}, true},
		{"skcipher ok", SkcipherVector{IV: make([]byte, 16), Plaintext: make([]byte, 32), Ciphertext: make([]byte, 32)}, false},
		{"skcipher empty", SkcipherVector{}, true},
		{"skcipher huge IV", SkcipherVector{IV: make([]byte, 33), Plaintext: make([]byte, 16), Ciphertext: make([]byte, 16)}, true},
		{"aead ok", AEADVector{IV: make([]byte, 12), Plaintext: make([]byte, 16), Ciphertext: make([]byte, 32)}, false},
		{"aead tag too long", AEADVector{IV: make([]byte, 12), Plaintext: make([]byte, 16), Ciphertext: make([]byte, 33)}, true},
		{"aead empty plaintext", AEADVector{IV: make([]byte, 12), Ciphertext: make([]byte, 16)}, false},
		{"hash ok", HashVector{Digest: make([]byte, 64)}, false},
		{"hash no digest", HashVector{Message: []byte("abc")}, true},
		{"hash digest too large", HashVector{Digest: make([]byte, 65)}, true},
		{"drbg ok", DRBGVector{Entropy: make([]byte, 48), Output: make([]byte, 128)}, false},
		{"drbg no entropy", DRBGVector{Output: make([]byte, 128)}, true},
		{"drbg no output", DRBGVector{Entropy: make([]byte, 48)}, true},
		{"drbg uneven pr entropy", DRBGVector{Entropy: make([]byte, 48), EntropyPRA: make([]byte, 32), Output: make([]byte, 16)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.vec.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultVectorsValid(t *testing.T) {
	for _, tt := range defaultTests {
		assert.NoError(t, tt.Vector.validate(), tt.Alg)
		assert.NotZero(t, tt.Kind.String(), tt.Alg)
	}

	// The DRBG pair covers both modes
	assert.False(t, drbgNoPRVector.PredictionResistant())
	assert.True(t, drbgPRVector.PredictionResistant())
}

func TestCloneIsDeep(t *testing.T) {
	orig := AEADVector{Key: []byte{1}, IV: []byte{2}, Assoc: nil, Plaintext: []byte{3}, Ciphertext: []byte{4, 5}}
	c := orig.clone().(AEADVector)

	c.Key[0], c.IV[0], c.Plaintext[0], c.Ciphertext[0] = 9, 9, 9, 9
	assert.Equal(t, byte(1), orig.Key[0])
	assert.Equal(t, byte(2), orig.IV[0])
	assert.Equal(t, byte(3), orig.Plaintext[0])
	assert.Equal(t, byte(4), orig.Ciphertext[0])
	assert.Nil(t, c.Assoc)
}

func TestKindAlgType(t *testing.T) {
	assert.Equal(t, crypto.TypeCipher, KindAES.AlgType())
	assert.Equal(t, crypto.TypeRNG, KindDRBG.AlgType())
	assert.Equal(t, crypto.AlgType(0), KindSHA256Library.AlgType())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
