package cookie

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/ochronus/hello-inertia/core/secretkey"
)

const (
	subkeyLength = 32

	signingInfo    = "cookie-signing-v1"
	encryptionInfo = "cookie-encryption-v1"
)

// keyPair holds the subkeys derived from one master key.
type keyPair struct {
	signing    []byte
	encryption []byte
}

// deriveKeys splits a master key into independent signing and encryption
// subkeys with HKDF-SHA256.
func deriveKeys(k secretkey.Key) (keyPair, error) {
	if k.IsZero() {
		return keyPair{}, ErrNoKey
	}
	master := k.Bytes()

	signing, err := expand(master, signingInfo)
	if err != nil {
		return keyPair{}, err
	}
	encryption, err := expand(master, encryptionInfo)
	if err != nil {
		return keyPair{}, err
	}
	return keyPair{signing: signing, encryption: encryption}, nil
}

func expand(master []byte, info string) ([]byte, error) {
	out := make([]byte, subkeyLength)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(info)), out); err != nil {
		return nil, fmt.Errorf("derive %s key: %w", info, err)
	}
	return out, nil
}
