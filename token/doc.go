// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package token implements the public poll token codec.

A public token is the only credential an anonymous voter holds. It is a
32-byte random value, URL-safe base64 encoded:

	tok, err := codec.Generate()

# Lookup Hashing

The database never stores the plaintext token. Lookups use a keyed hash:

	hash := codec.Hash(tok)

Hash is HMAC-SHA256 under a server-held pepper, so the mapping from stored
hash back to token requires the pepper, not just a database dump.

# Sealing

The organizer needs to see the plaintext link again after creation, so the
token is also stored sealed with ChaCha20-Poly1305 under a separate key:

	sealed, err := codec.Seal(tok)
	tok, err = codec.Unseal(sealed)

Unseal fails closed with ErrUnsealFailed on tampering or key rotation;
callers degrade to an empty token rather than failing the read.
*/
package token
