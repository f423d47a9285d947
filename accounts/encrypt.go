package accounts

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/twistededwards"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const ENCRYPTION_INFO = "eonvm record encryption"

var ErrDecryptionFailed = errors.New("decryption failed")

// Encrypt seals plaintext to the owner of addr. The ciphertext is the
// compressed ephemeral point R followed by the AEAD output; R is also bound
// as associated data.
func Encrypt(addr Address, plaintext []byte, r io.Reader) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	params := curve()
	k, err := rand.Int(r, &params.Order)
	if err != nil {
		return nil, err
	}
	var eph, shared twistededwards.PointAffine
	eph.ScalarMultiplication(&params.Base, k)
	shared.ScalarMultiplication(&addr.point, k)
	ephBytes := eph.Bytes()
	aead, err := newAEAD(shared, ephBytes)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	out := make([]byte, 0, len(ephBytes)+len(plaintext)+aead.Overhead())
	out = append(out, ephBytes[:]...)
	return aead.Seal(out, nonce, plaintext, ephBytes[:]), nil
}

// Decrypt opens a ciphertext produced by Encrypt for the address of vk.
func (me ViewKey) Decrypt(ciphertext []byte) ([]byte, error) {
	var eph twistededwards.PointAffine
	n, err := eph.SetBytes(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	var shared twistededwards.PointAffine
	shared.ScalarMultiplication(&eph, new(big.Int).Set(&me.scalar))
	ephBytes := eph.Bytes()
	aead, err := newAEAD(shared, ephBytes)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	plain, err := aead.Open(nil, nonce, ciphertext[n:], ephBytes[:])
	if err != nil {
		return nil, ErrDecryptionFailed
	}
	return plain, nil
}

// each ephemeral point yields a fresh key, so a zero nonce is never reused
func newAEAD(shared twistededwards.PointAffine, eph [32]byte) (cipher.AEAD, error) {
	secret := shared.Bytes()
	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret[:], eph[:], []byte(ENCRYPTION_INFO)), key); err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}
