// Package testdata holds published known-answer vectors (FIPS-197,
// SP 800-38A/D, IEEE 1619, FIPS 180-4, FIPS 202, RFC 4231) used to check the
// software implementations independently of the self-test data.
package testdata

// CipherVector is a single-block or mode-of-operation vector. All fields hex.
type CipherVector struct {
	Name       string
	Alg        string
	Key        string
	IV         string
	Plaintext  string
	Ciphertext string
	NextIV     string // IV after one encrypt request, empty when unchanged
}

// AEADVector is a GCM vector; Ciphertext includes the tag.
type AEADVector struct {
	Name       string
	Key        string
	IV         string
	Assoc      string
	Plaintext  string
	Ciphertext string
}

// HashVector has a raw message and hex digest.
type HashVector struct {
	Name    string
	Alg     string
	Key     string
	Message string
	Digest  string
}

// Ciphers contains single-block and mode vectors.
var Ciphers = []CipherVector{
	{
		Name:       "FIPS-197 C.1",
		Alg:        "aes",
		Key:        "000102030405060708090a0b0c0d0e0f",
		Plaintext:  "00112233445566778899aabbccddeeff",
		Ciphertext: "69c4e0d86a7b0430d8cdb78070b4c55a",
	},
	{
		Name:       "SP800-38A F.1.1",
		Alg:        "ecb(aes)",
		Key:        "2b7e151628aed2a6abf7158809cf4f3c",
		Plaintext:  "6bc1bee22e409f96e93d7e117393172a",
		Ciphertext: "3ad77bb40d7a3660a89ecaf32466ef97",
	},
	{
		Name:       "SP800-38A F.2.1",
		Alg:        "cbc(aes)",
		Key:        "2b7e151628aed2a6abf7158809cf4f3c",
		IV:         "000102030405060708090a0b0c0d0e0f",
		Plaintext:  "6bc1bee22e409f96e93d7e117393172a",
		Ciphertext: "7649abac8119b246cee98e9b12e9197d",
		NextIV:     "7649abac8119b246cee98e9b12e9197d",
	},
	{
		Name:       "SP800-38A F.5.1",
		Alg:        "ctr(aes)",
		Key:        "2b7e151628aed2a6abf7158809cf4f3c",
		IV:         "f0f1f2f3f4f5f6f7f8f9fafbfcfdfeff",
		Plaintext:  "6bc1bee22e409f96e93d7e117393172a",
		Ciphertext: "874d6191b620e3261bef6864990db6ce",
		NextIV:     "f0f1f2f3f4f5f6f7f8f9fafbfcfdff00",
	},
	{
		Name:       "IEEE 1619 vector 2",
		Alg:        "xts(aes)",
		Key:        "1111111111111111111111111111111122222222222222222222222222222222",
		IV:         "33333333330000000000000000000000",
		Plaintext:  "4444444444444444444444444444444444444444444444444444444444444444",
		Ciphertext: "c454185e6a16936e39334038acef838bfb186fff7480adc4289382ecd6d394f0",
	},
}

// AEADs contains GCM vectors.
var AEADs = []AEADVector{
	{
		Name:       "GCM test case 2",
		Key:        "00000000000000000000000000000000",
		IV:         "000000000000000000000000",
		Plaintext:  "00000000000000000000000000000000",
		Ciphertext: "0388dace60b6a392f328c2b971b2fe78ab6e47d42cec13bdf53a67b21257bddf",
	},
}

// Hashes contains digest and HMAC vectors.
var Hashes = []HashVector{
	{
		Name:    "FIPS 180-4 SHA-1 abc",
		Alg:     "sha1",
		Message: "abc",
		Digest:  "a9993e364706816aba3e25717850c26c9cd0d89d",
	},
	{
		Name:    "FIPS 180-4 SHA-256 abc",
		Alg:     "sha256",
		Message: "abc",
		Digest:  "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
	},
	{
		Name:    "FIPS 180-4 SHA-512 abc",
		Alg:     "sha512",
		Message: "abc",
		Digest:  "ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f",
	},
	{
		Name:    "FIPS 202 SHA3-256 abc",
		Alg:     "sha3-256",
		Message: "abc",
		Digest:  "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532",
	},
	{
		Name:    "RFC 4231 test case 2",
		Alg:     "hmac(sha256)",
		Key:     "4a656665",
		Message: "what do ya want for nothing?",
		Digest:  "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
	},
}

// DRBGVector drives reset, then two generate calls; Expected is the second
// output. All fields hex.
type DRBGVector struct {
	Name     string
	Alg      string
	Entropy  string
	Pers     string
	EntropyA string
	EntropyB string
	AddtlA   string
	AddtlB   string
	Expected string
}

// DRBGs contains HMAC_DRBG(SHA-256) vectors without and with prediction
// resistance.
var DRBGs = []DRBGVector{
	{
		Name:     "HMAC_DRBG SHA-256 no PR",
		Alg:      "drbg_nopr_hmac_sha256",
		Entropy:  "f97a3cfd91faa046b9e61b9493d436c4931f604b22f1081521b3419151e8ff0611f3a7d43595357d58120bd1e2dd8aed",
		AddtlA:   "517289afe444a0fe5ed1a41dbbb5eb17150079bdd31e29cf2ff30034d8268e3b",
		AddtlB:   "88028d29ef80b4e6f0fe12f91d7449fe75062682e89c571440c0c9b52c42a6e0",
		Expected: "c6871cff0824fe55ea7689a52229886730450e5d362da5bf590dcf9acd67fed4cb32107df5d03969a66b1f6494fdf5d63d5b4d0d34ea7399a07d0116126d0d518c7c55ba46e12f62efc8fe28a51c9d428e6d371d7397ab319fc73ded4722e5b4f30004032a6128df5e7497ecf82ca7b0a50e867ef6728a4f509a8c859087039c",
	},
	{
		Name:     "HMAC_DRBG SHA-256 PR",
		Alg:      "drbg_pr_hmac_sha256",
		Entropy:  "c7ccbc677e21661e272b63dd3a78dcdf666d3f24aecf3701a90d898aa7dc8158aeb210157e18446d13eadf3785fe81fb",
		Pers:     "bc55ab3cf652b0113d7b90b824c9264e5a1e770d3d584adad181e9f8eb308f6f",
		EntropyA: "7ba1915b3c04c41b1d192f1a1881603c6c6291b7e9f5cb96bb816accb5ae55b6",
		EntropyB: "992cc7787e3b8812efbed3d27d2aa586da8d58734a0ab22ebb4c7ee39ab681c1",
		AddtlA:   "18e817ffef39c7415c730303f63de85fc8abe4ab0fade8d686885528c169dd76",
		AddtlB:   "ac07fcbe870ed3ea1f7eb8e79dece8e7bcf3182577354aaa00992add0a005082",
		Expected: "956f95fc3bb7fe3ed04e1a146c347f7b1d0d635e489c69e64607d287f386523d98275ed754e775504ffb4dfdac2f4b77cf9e8ecc16a224cd53de3ec5555dd5263f89dfca8b4e1eb68878635ca263984e6f2559b15f2b23b04ba5185dc2157440594cb41ecf9a36fd43e203b8599130892ac85a43237c7372da3fad2bba006bd1",
	},
}
