package bencode

import sha256 "github.com/minio/sha256-simd"

// Sum returns the SHA-256 digest of the canonical encoding of v. Because
// Marshal output is canonical, the digest is stable across dictionary
// construction order and across decode/encode round trips.
func Sum(v Value) [sha256.Size]byte {
	return sha256.Sum256(Marshal(v))
}
