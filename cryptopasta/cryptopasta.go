// Package cryptopasta encrypts journal content at rest with AES-256-GCM.
package cryptopasta

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

var ErrMalformedCiphertext = errors.New("malformed ciphertext")

// NewEncryptionKey generates a random 256-bit key.
func NewEncryptionKey() *[32]byte {
	key := [32]byte{}
	_, err := io.ReadFull(rand.Reader, key[:])
	if err != nil {
		panic(err)
	}
	return &key
}

// KeyFromString copies s into a 256-bit key, truncating or zero padding it.
func KeyFromString(s string) *[32]byte {
	key := [32]byte{}
	copy(key[:], s)
	return &key
}

// Encrypt seals plaintext and prepends the random nonce to the output.
func Encrypt(plaintext []byte, key *[32]byte) (ciphertext []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	_, err = io.ReadFull(rand.Reader, nonce)
	if err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens data produced by Encrypt with the same key.
func Decrypt(ciphertext []byte, key *[32]byte) (plaintext []byte, err error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, ErrMalformedCiphertext
	}

	return gcm.Open(nil,
		ciphertext[:gcm.NonceSize()],
		ciphertext[gcm.NonceSize():],
		nil,
	)
}

func newGCM(key *[32]byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}

	return cipher.NewGCM(block)
}
