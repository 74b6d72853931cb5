package selftest

import "encoding/hex"

// Known answers computed offline with independent implementations.

var message = []byte("This is a fixed test message used by the crypto self-tests (64B)")

var (
	aesKey      = unhex("5f5c6b8a3a92c1d4e1e34f7d0b2a6e91")
	aesIV       = unhex("a6b2c9f04e53d1870f3c2d9e45b7188a")
	aesGCMAssoc = []byte("associated data")

	aesXTSKey = unhex("7c0e4a2f9d13b5688e21f7c34a96d05b" +
		"e3195a7dc26b0f84a19c3e57d208bb46")
	// Data unit 42
	aesXTSIV = unhex("2a000000000000000000000000000000")

	hmacKey = unhex("9a61c3e05bd27f8e146a2d9c03f58b7e26e19d4ab0c75f38")
)

var (
	aesECBCiphertext = unhex("33ce875a759587a73200f25b4c012f3a" +
		"49f6bed79e7ba6e340dd8358c9dca3f3" +
		"ab8798ecdb29543a2c033d9668ec96ea" +
		"9b6d5dfd57cae68a4da1c8d7132a32d7")

	aesCBCCiphertext = unhex("e30c5a9109e16073217bfd62d5a6914d" +
		"a72aba2fb21c5cb37849fe1f0a97b3cc" +
		"8787669a227d7147ab3bcf5dd7e35387" +
		"33a314b8ce1d9129befd957c49978bdf")

	aesCTRCiphertext = unhex("c6dc1d54f2fc194a7ae955fbba442e7d" +
		"c4b66275e340a9a3976b3755386fb06b" +
		"ac89015dc1af5dd96b7fdb5112814b80" +
		"cc156533bbb61500db4c217f0dfd4cf0")

	aesXTSCiphertext = unhex("7f21e861e29f3ec1924b73523852423b" +
		"ff1fa31b6da8281b21d501842fcb3c30" +
		"eb2d17d4086abdb0e47fded940b9d027" +
		"f24078b86c5c51c63f49585906fbb4a6")

	// 64 bytes of ciphertext followed by a 16-byte tag
	aesGCMCiphertext = unhex("aa73ee2afc630e0898d240a8e20c0af8" +
		"6afa5932699ec389114e2ba66d16584c" +
		"8b29d366b3de9f5f0f5078b20050401d" +
		"5d5eca93c30bcce02b39d5d51c1b26ae" +
		"b9831d6ad140bcf795b25e79e9859cff")
)

var (
	sha1Digest = unhex("e898289c0de22456c5576711f4544f79defc3148")

	sha256Digest = unhex("7641460d66a3778f7e44f7ef3bbf8b72" +
		"66e082825dffd907744e6c30b194aa48")

	hmacSHA256Digest = unhex("7aebe8c0cfae1abb3d165e5629ad5dd0" +
		"2647f8d74144c6c2fabcd19240329d0e")

	sha512Digest = unhex("331d380aa7b74ad1e2db00e4b21ff7f7" +
		"052c61142e486695a011d1d4fdf9582c" +
		"cdf25f8006dad22914ef2ced39fd50a0" +
		"609fdea266470a4c630c401fb228bbc7")

	sha3Digest = unhex("5f002db254ae0605bd77c2c47d949bbd" +
		"2b6144c00b091bd4d4db453c39764c97")
)

var drbgNoPRVector = DRBGVector{
	Entropy: unhex("f97a3cfd91faa046b9e61b9493d436c4" +
		"931f604b22f1081521b3419151e8ff06" +
		"11f3a7d43595357d58120bd1e2dd8aed"),
	AddtlA: unhex("517289afe444a0fe5ed1a41dbbb5eb17" +
		"150079bdd31e29cf2ff30034d8268e3b"),
	AddtlB: unhex("88028d29ef80b4e6f0fe12f91d7449fe" +
		"75062682e89c571440c0c9b52c42a6e0"),
	Output: unhex("c6871cff0824fe55ea7689a522298867" +
		"30450e5d362da5bf590dcf9acd67fed4" +
		"cb32107df5d03969a66b1f6494fdf5d6" +
		"3d5b4d0d34ea7399a07d0116126d0d51" +
		"8c7c55ba46e12f62efc8fe28a51c9d42" +
		"8e6d371d7397ab319fc73ded4722e5b4" +
		"f30004032a6128df5e7497ecf82ca7b0" +
		"a50e867ef6728a4f509a8c859087039c"),
}

var drbgPRVector = DRBGVector{
	Entropy: unhex("c7ccbc677e21661e272b63dd3a78dcdf" +
		"666d3f24aecf3701a90d898aa7dc8158" +
		"aeb210157e18446d13eadf3785fe81fb"),
	Pers: unhex("bc55ab3cf652b0113d7b90b824c9264e" +
		"5a1e770d3d584adad181e9f8eb308f6f"),
	EntropyPRA: unhex("7ba1915b3c04c41b1d192f1a1881603c" +
		"6c6291b7e9f5cb96bb816accb5ae55b6"),
	EntropyPRB: unhex("992cc7787e3b8812efbed3d27d2aa586" +
		"da8d58734a0ab22ebb4c7ee39ab681c1"),
	AddtlA: unhex("18e817ffef39c7415c730303f63de85f" +
		"c8abe4ab0fade8d686885528c169dd76"),
	AddtlB: unhex("ac07fcbe870ed3ea1f7eb8e79dece8e7" +
		"bcf3182577354aaa00992add0a005082"),
	Output: unhex("956f95fc3bb7fe3ed04e1a146c347f7b" +
		"1d0d635e489c69e64607d287f386523d" +
		"98275ed754e775504ffb4dfdac2f4b77" +
		"cf9e8ecc16a224cd53de3ec5555dd526" +
		"3f89dfca8b4e1eb68878635ca263984e" +
		"6f2559b15f2b23b04ba5185dc2157440" +
		"594cb41ecf9a36fd43e203b859913089" +
		"2ac85a43237c7372da3fad2bba006bd1"),
}

func unhex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
