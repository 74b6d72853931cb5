package crypto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
)

func newTestHash(info crypto.AlgInfo) (crypto.Transform, error) {
	p := crypto.NewProvider()
	return p.AllocHash("sha256")
}

func TestRegistryLookupPriority(t *testing.T) {
	r := crypto.NewRegistry()

	require.NoError(t, r.Register(crypto.Algorithm{
		Info: crypto.AlgInfo{Name: "sha256", DriverName: "sha256-low", Priority: 10, Type: crypto.TypeHash},
		New:  newTestHash,
	}))
	require.NoError(t, r.Register(crypto.Algorithm{
		Info: crypto.AlgInfo{Name: "sha256", DriverName: "sha256-high", Priority: 300, Type: crypto.TypeHash},
		New:  newTestHash,
	}))
	require.NoError(t, r.Register(crypto.Algorithm{
		Info: crypto.AlgInfo{Name: "sha256", DriverName: "sha256-tie", Priority: 300, Type: crypto.TypeHash},
		New:  newTestHash,
	}))

	tests := []struct {
		name       string
		lookup     string
		wantDriver string
	}{
		{"by name picks highest priority, first registered on tie", "sha256", "sha256-high"},
		{"by driver name picks exact driver", "sha256-low", "sha256-low"},
		{"tied driver reachable by driver name", "sha256-tie", "sha256-tie"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := r.Lookup(tt.lookup, crypto.TypeHash)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, info.DriverName)
		})
	}
}

func TestRegistryErrors(t *testing.T) {
	r := crypto.NewProvider()

	_, err := r.Lookup("md5", crypto.TypeHash)
	assert.ErrorIs(t, err, crypto.ErrNotFound)

	_, err = r.AllocSkcipher("sha256")
	assert.ErrorIs(t, err, crypto.ErrWrongType)

	err = r.Register(crypto.Algorithm{
		Info: crypto.AlgInfo{Name: "sha256", DriverName: "sha256-generic", Type: crypto.TypeHash},
		New:  newTestHash,
	})
	assert.Error(t, err, "duplicate driver name")

	err = r.Register(crypto.Algorithm{Info: crypto.AlgInfo{Name: "x", DriverName: "x-generic"}})
	assert.Error(t, err, "missing constructor")

	err = r.Register(crypto.Algorithm{Info: crypto.AlgInfo{Name: "x"}, New: newTestHash})
	assert.Error(t, err, "missing driver name")
}

func TestRegistryConstructorMismatch(t *testing.T) {
	r := crypto.NewRegistry()
	require.NoError(t, r.Register(crypto.Algorithm{
		Info: crypto.AlgInfo{Name: "fake", DriverName: "fake-generic", Type: crypto.TypeCipher},
		New:  newTestHash,
	}))

	_, err := r.AllocCipher("fake")
	assert.ErrorIs(t, err, crypto.ErrWrongType)
}

func TestNewProviderRegistersSoftware(t *testing.T) {
	p := crypto.NewProvider()

	tests := []struct {
		name       string
		typ        crypto.AlgType
		wantDriver string
	}{
		{"aes", crypto.TypeCipher, "aes-generic"},
		{"cbc(aes)", crypto.TypeSkcipher, "cbc-aes-generic"},
		{"ctr(aes)", crypto.TypeSkcipher, "ctr-aes-generic"},
		{"ecb(aes)", crypto.TypeSkcipher, "ecb-aes-generic"},
		{"xts(aes)", crypto.TypeSkcipher, "xts-aes-generic"},
		{"gcm(aes)", crypto.TypeAEAD, "gcm-aes-generic"},
		{"sha1", crypto.TypeHash, "sha1-generic"},
		{"sha256", crypto.TypeHash, "sha256-generic"},
		{"sha512", crypto.TypeHash, "sha512-generic"},
		{"sha3-256", crypto.TypeHash, "sha3-256-generic"},
		{"hmac(sha256)", crypto.TypeHash, "hmac(sha256-generic)"},
		{"stdrng", crypto.TypeRNG, "drbg_nopr_hmac_sha256"},
		{"drbg_nopr_hmac_sha256", crypto.TypeRNG, "drbg_nopr_hmac_sha256"},
		{"drbg_pr_hmac_sha256", crypto.TypeRNG, "drbg_pr_hmac_sha256"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := p.Lookup(tt.name, tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, info.DriverName)
			assert.False(t, info.Async)
		})
	}
}

func TestAlgorithmsSorted(t *testing.T) {
	infos := crypto.NewProvider().Algorithms()
	require.NotEmpty(t, infos)

	for i := 1; i < len(infos); i++ {
		prev, cur := infos[i-1], infos[i]
		if prev.Name == cur.Name {
			assert.GreaterOrEqual(t, prev.Priority, cur.Priority)
		} else {
			assert.Less(t, prev.Name, cur.Name)
		}
	}
}

func TestAlgTypeString(t *testing.T) {
	assert.Equal(t, "skcipher", crypto.TypeSkcipher.String())
	assert.Equal(t, "rng", crypto.TypeRNG.String())
	assert.Equal(t, "unknown", crypto.AlgType(0).String())
}
