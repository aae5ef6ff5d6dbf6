package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	KeySize   = 32
	nonceSize = 24
)

var ErrOpen = errors.New("cannot open sealed entry")

// DeriveKey stretches secret into a secretbox key. info separates keys
// derived from the same secret for different purposes.
func DeriveKey(secret []byte, info string) (*[KeySize]byte, error) {
	key := new([KeySize]byte)
	r := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(r, key[:]); err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	return key, nil
}

// SealEntry serializes the given entry to JSON and seals it with NaCl
// secretbox.
//
// A fresh random 24-byte nonce is generated for each call and prepended to
// the returned box, so the output is self-contained and can be passed
// unchanged to OpenEntry.
//
// Example:
//
//	key, _ := DeriveKey([]byte("sessionSecret"), "session")
//	box, err := SealEntry(map[string]string{"token": "..."}, key)
//	if err != nil {
//	    log.Fatal(err)
//	}
func SealEntry(entry any, key *[KeySize]byte) ([]byte, error) {
	plaintext, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}

	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

// OpenEntry reverses SealEntry and unmarshals the JSON payload into v.
// Boxes that were truncated, tampered with or sealed under another key
// return ErrOpen.
func OpenEntry(box []byte, key *[KeySize]byte, v any) error {
	if len(box) < nonceSize+secretbox.Overhead {
		return ErrOpen
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])

	plaintext, ok := secretbox.Open(nil, box[nonceSize:], &nonce, key)
	if !ok {
		return ErrOpen
	}

	return json.Unmarshal(plaintext, v)
}
