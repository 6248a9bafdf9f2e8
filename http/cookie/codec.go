package cookie

import (
	"crypto/sha256"
	"fmt"
	"io"

	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/hkdf"
)

const (
	hashKeyLen  = 64
	blockKeyLen = 32
)

var (
	hashInfo  = []byte("dispatch cookie hash key")
	blockInfo = []byte("dispatch cookie block key")
)

// A Codec encrypts cookie values with keys derived from a per-session security key.
//
// Values are serialized as JSON, encrypted with AES-CTR, signed with HMAC-SHA256
// and base64 encoded by securecookie.
// The cookie name is bound into the signature, so a value only decrypts under the name it was written with.
type Codec struct{}

// NewCodec constructs a Codec.
func NewCodec() Codec { return Codec{} }

// Encrypt returns the ciphertext of v's JSON form for the cookie name.
func (c Codec) Encrypt(key []byte, name string, v any) (string, error) {
	sc, err := c.secure(key)
	if err != nil {
		return "", err
	}

	out, err := sc.Encode(name, v)
	if err != nil {
		return "", fmt.Errorf("failed encrypting cookie %s: %w", name, err)
	}

	return out, nil
}

// Decrypt decodes value, written for the cookie name, into dst.
func (c Codec) Decrypt(key []byte, name, value string, dst any) error {
	sc, err := c.secure(key)
	if err != nil {
		return err
	}

	if err := sc.Decode(name, value, dst); err != nil {
		return fmt.Errorf("failed decrypting cookie %s: %w", name, err)
	}

	return nil
}

func (c Codec) secure(key []byte) (*securecookie.SecureCookie, error) {
	if len(key) == 0 {
		return nil, ErrNoKey
	}

	hashKey, err := derive(key, hashInfo, hashKeyLen)
	if err != nil {
		return nil, err
	}

	blockKey, err := derive(key, blockInfo, blockKeyLen)
	if err != nil {
		return nil, err
	}

	sc := securecookie.New(hashKey, blockKey).
		SetSerializer(securecookie.JSONEncoder{}).
		MaxAge(0)

	return sc, nil
}

func derive(secret, info []byte, n int) ([]byte, error) {
	out := make([]byte, n)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, info), out); err != nil {
		return nil, fmt.Errorf("failed deriving cookie key: %w", err)
	}

	return out, nil
}
