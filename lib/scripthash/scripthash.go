// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

// Package scripthash computes the delegate-script digest stored in
// launch records. The digest ties a recorded run to the exact script
// bytes that produced it: when a checkpoint behaves unexpectedly, the
// record answers whether game.py changed between launches.
package scripthash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed digest.
type Digest [32]byte

// scriptDomainKey is the fixed BLAKE3 key for the delegate-script
// domain. Changing it invalidates every recorded digest. The bytes
// are the ASCII domain name zero-padded to 32, which keeps the key
// inspectable in hex dumps without weakening the keyed mode (the key
// is opaque to BLAKE3).
var scriptDomainKey = [32]byte{
	's', 'e', 'q', 'l', 'a', 'b', '.', 'd', 'e', 'l', 'e', 'g', 'a', 't', 'e', '.',
	's', 'c', 'r', 'i', 'p', 't', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// HashScript computes the script-domain digest of the file at path.
// The file is streamed through the hasher so memory use is constant
// regardless of script size.
func HashScript(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	// NewKeyed only fails for a wrong key length, which the fixed-size
	// array rules out.
	hasher, err := blake3.NewKeyed(scriptDomainKey[:])
	if err != nil {
		panic("scripthash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}

	if _, err := io.Copy(hasher, file); err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}

	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// String returns the hex encoding, the canonical format used in
// records and log output.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Parse parses a 64-character hex string into a Digest.
func Parse(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing script digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("script digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
