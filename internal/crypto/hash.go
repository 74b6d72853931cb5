package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"golang.org/x/crypto/sha3"
)

type hashAlgorithm struct {
	name       string
	driver     string
	blockSize  int
	digestSize int
	newHash    func(AlgInfo) (Transform, error)
}

func newSHA3() hash.Hash { return sha3.New256() }

var hashAlgorithms = []hashAlgorithm{
	{"sha1", "sha1-generic", sha1.BlockSize, sha1.Size, unkeyedHash(sha1.New)},
	{"sha256", "sha256-generic", sha256.BlockSize, sha256.Size, unkeyedHash(sha256.New)},
	{"sha512", "sha512-generic", sha512.BlockSize, sha512.Size, unkeyedHash(sha512.New)},
	{"sha3-256", "sha3-256-generic", 136, 32, unkeyedHash(newSHA3)},
	{"hmac(sha256)", "hmac(sha256-generic)", sha256.BlockSize, sha256.Size, keyedHash(sha256.New)},
}

type hashTransform struct {
	info  AlgInfo
	newFn func() hash.Hash
	keyed bool
	key   []byte
}

func unkeyedHash(newFn func() hash.Hash) func(AlgInfo) (Transform, error) {
	return func(info AlgInfo) (Transform, error) {
		return &hashTransform{info: info, newFn: newFn}, nil
	}
}

// keyedHash builds HMAC over newFn. Any key length is accepted.
func keyedHash(newFn func() hash.Hash) func(AlgInfo) (Transform, error) {
	return func(info AlgInfo) (Transform, error) {
		return &hashTransform{info: info, newFn: newFn, keyed: true}, nil
	}
}

func (h *hashTransform) Info() AlgInfo { return h.info }

func (h *hashTransform) SetKey(key []byte) error {
	if !h.keyed {
		return ErrKeyNotSupported
	}
	wipe(h.key)
	h.key = append([]byte{}, key...)
	return nil
}

func (h *hashTransform) Digest(msg []byte) ([]byte, error) {
	var d hash.Hash
	if h.keyed {
		if h.key == nil {
			return nil, ErrNoKey
		}
		d = hmac.New(h.newFn, h.key)
	} else {
		d = h.newFn()
	}
	d.Write(msg)
	return d.Sum(nil), nil
}

func (h *hashTransform) Free() {
	wipe(h.key)
	h.key = nil
}
