package cryptotest

import (
	"crypto/sha256"

	"github.com/stretchr/testify/mock"

	"github.com/TheMichaelB/cryptokat/internal/crypto"
)

// MockLibrary records library calls and delegates to Base.
type MockLibrary struct {
	mock.Mock
	Base crypto.Library

	// ExpandErr fails AESExpandKey.
	ExpandErr error

	// CorruptAES flips the first output byte of AESEncrypt and AESDecrypt.
	CorruptAES bool
	// CorruptSHA256 flips the first byte of SHA256 results.
	CorruptSHA256 bool
}

// NewMockLibrary returns a mock delegating to the built-in library, with
// every method allowed.
func NewMockLibrary() *MockLibrary {
	m := &MockLibrary{Base: crypto.NewLibrary()}
	m.On("AESExpandKey", mock.Anything).Return().Maybe()
	m.On("AESEncrypt", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	m.On("AESDecrypt", mock.Anything, mock.Anything, mock.Anything).Return().Maybe()
	m.On("SHA256", mock.Anything).Return().Maybe()
	return m
}

func (m *MockLibrary) AESExpandKey(key []byte) (*crypto.AESContext, error) {
	m.Called(key)
	if m.ExpandErr != nil {
		return nil, m.ExpandErr
	}
	return m.Base.AESExpandKey(key)
}

func (m *MockLibrary) AESEncrypt(ctx *crypto.AESContext, dst, src []byte) {
	m.Called(ctx, dst, src)
	m.Base.AESEncrypt(ctx, dst, src)
	if m.CorruptAES {
		dst[0] ^= 0xff
	}
}

func (m *MockLibrary) AESDecrypt(ctx *crypto.AESContext, dst, src []byte) {
	m.Called(ctx, dst, src)
	m.Base.AESDecrypt(ctx, dst, src)
	if m.CorruptAES {
		dst[0] ^= 0xff
	}
}

func (m *MockLibrary) SHA256(data []byte) [sha256.Size]byte {
	m.Called(data)
	sum := m.Base.SHA256(data)
	if m.CorruptSHA256 {
		sum[0] ^= 0xff
	}
	return sum
}
