package selftest

import (
	"github.com/TheMichaelB/cryptokat/internal/crypto"
	"github.com/TheMichaelB/cryptokat/internal/models"
)

// Operation labels reported with failures.
const (
	opVector      = "vector"
	opAllocate    = "allocate"
	opValidate    = "validate"
	opSizes       = "check sizes"
	opSetKey      = "setkey"
	opSetAuthSize = "setauthsize"
	opReset       = "reset"
	opEncrypt     = "encryption"
	opDecrypt     = "decryption"
	opExpandKey   = "expandkey (library API)"
	opEncryptLib  = "encryption (library API)"
	opDecryptLib  = "decryption (library API)"
	opDigest      = "digest"
	opDigestLib   = "digest (library API)"
	opGetBytes1   = "get_bytes (try 1)"
	opGetBytes2   = "get_bytes (try 2)"
	opGetBytes    = "get_bytes"
)

// harness is what an executor needs for one run.
type harness struct {
	provider crypto.Provider
	lib      crypto.Library
	verify   verifier
}

func fail(alg, op string, kind models.ErrorKind, err error) error {
	return &models.SelfTestError{Alg: alg, Op: op, Kind: kind, Err: err}
}
