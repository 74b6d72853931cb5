package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/xts"
)

// modeState performs one in-place request with an expanded key.
type modeState interface {
	crypt(buf, iv []byte, encrypt bool) error
}

type skcipher struct {
	info  AlgInfo
	key   []byte
	setup func(key []byte) (modeState, error)
	state modeState
}

func newSkcipher(setup func(key []byte) (modeState, error)) func(AlgInfo) (Transform, error) {
	return func(info AlgInfo) (Transform, error) {
		return &skcipher{info: info, setup: setup}, nil
	}
}

var (
	newCBC = newSkcipher(blockMode(func(b cipher.Block) modeState { return cbcMode{b} }))
	newCTR = newSkcipher(blockMode(func(b cipher.Block) modeState { return ctrMode{b} }))
	newECB = newSkcipher(blockMode(func(b cipher.Block) modeState { return ecbMode{b} }))
	newXTS = newSkcipher(setupXTS)
)

func (s *skcipher) Info() AlgInfo { return s.info }

func (s *skcipher) SetKey(key []byte) error {
	state, err := s.setup(key)
	if err != nil {
		return err
	}
	s.Free()
	s.key = append([]byte(nil), key...)
	s.state = state
	return nil
}

func (s *skcipher) Encrypt(buf, iv []byte) error { return s.crypt(buf, iv, true) }

func (s *skcipher) Decrypt(buf, iv []byte) error { return s.crypt(buf, iv, false) }

func (s *skcipher) crypt(buf, iv []byte, encrypt bool) error {
	if s.state == nil {
		return ErrNoKey
	}
	if len(iv) != s.info.IVSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidIV, len(iv), s.info.IVSize)
	}
	return s.state.crypt(buf, iv, encrypt)
}

func (s *skcipher) Free() {
	wipe(s.key)
	s.key = nil
	s.state = nil
}

func blockMode(wrap func(cipher.Block) modeState) func([]byte) (modeState, error) {
	return func(key []byte) (modeState, error) {
		var k aesKey
		if err := k.setKey(key); err != nil {
			return nil, err
		}
		return wrap(k.block), nil
	}
}

func checkBlocks(buf []byte) error {
	if len(buf)%aesBlockSize != 0 {
		return fmt.Errorf("%w: %d is not a multiple of %d", ErrInvalidLength, len(buf), aesBlockSize)
	}
	return nil
}

type cbcMode struct{ block cipher.Block }

func (m cbcMode) crypt(buf, iv []byte, encrypt bool) error {
	if err := checkBlocks(buf); err != nil || len(buf) == 0 {
		return err
	}
	last := len(buf) - aesBlockSize
	if encrypt {
		cipher.NewCBCEncrypter(m.block, iv).CryptBlocks(buf, buf)
		copy(iv, buf[last:])
		return nil
	}
	next := append([]byte(nil), buf[last:]...)
	cipher.NewCBCDecrypter(m.block, iv).CryptBlocks(buf, buf)
	copy(iv, next)
	return nil
}

type ctrMode struct{ block cipher.Block }

func (m ctrMode) crypt(buf, iv []byte, _ bool) error {
	cipher.NewCTR(m.block, iv).XORKeyStream(buf, buf)
	addCounter(iv, uint64((len(buf)+aesBlockSize-1)/aesBlockSize))
	return nil
}

// addCounter adds n to a big-endian counter block.
func addCounter(ctr []byte, n uint64) {
	for i := len(ctr) - 1; i >= 0 && n > 0; i-- {
		sum := uint64(ctr[i]) + (n & 0xff)
		ctr[i] = byte(sum)
		n = (n >> 8) + (sum >> 8)
	}
}

type ecbMode struct{ block cipher.Block }

func (m ecbMode) crypt(buf, _ []byte, encrypt bool) error {
	if err := checkBlocks(buf); err != nil {
		return err
	}
	for off := 0; off < len(buf); off += aesBlockSize {
		b := buf[off : off+aesBlockSize]
		if encrypt {
			m.block.Encrypt(b, b)
		} else {
			m.block.Decrypt(b, b)
		}
	}
	return nil
}

type xtsMode struct{ c *xts.Cipher }

func setupXTS(key []byte) (modeState, error) {
	if len(key) != 32 && len(key) != 64 {
		return nil, fmt.Errorf("%w: xts key of %d bytes", ErrInvalidKey, len(key))
	}
	half := len(key) / 2
	if subtle.ConstantTimeCompare(key[:half], key[half:]) == 1 {
		return nil, fmt.Errorf("%w: xts key halves are identical", ErrInvalidKey)
	}
	c, err := xts.NewCipher(aes.NewCipher, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return xtsMode{c}, nil
}

// The IV is the data unit (sector) number, little endian. Only 64-bit
// sector numbers are supported.
func (m xtsMode) crypt(buf, iv []byte, encrypt bool) error {
	if len(buf) == 0 {
		return fmt.Errorf("%w: empty data unit", ErrInvalidLength)
	}
	if err := checkBlocks(buf); err != nil {
		return err
	}
	if binary.LittleEndian.Uint64(iv[8:]) != 0 {
		return fmt.Errorf("%w: sector number exceeds 64 bits", ErrInvalidIV)
	}
	sector := binary.LittleEndian.Uint64(iv[:8])
	if encrypt {
		m.c.Encrypt(buf, buf, sector)
	} else {
		m.c.Decrypt(buf, buf, sector)
	}
	return nil
}
