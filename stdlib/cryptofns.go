package stdlib

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	werrors "github.com/wfl-lang/wfl/compiler/errors"
	"github.com/wfl-lang/wfl/runtime/value"
)

// maxCryptoInput is spec.md §6.4's 100MB input cap, rejecting
// unreasonably large text before it ever reaches the hash primitive.
const maxCryptoInput = 100 * 1024 * 1024

func checkCryptoInputSize(s string) error {
	if len(s) > maxCryptoInput {
		return werrors.New(werrors.RuntimeResource, "input exceeds the 100MB crypto function limit", werrors.SourceLocation{})
	}
	return nil
}

// cryptoNatives implements spec.md §6.4's WFLHASH/WFLMAC family:
// wflhash256/512 over sha3.Sum256/Sum512 (no teacher precedent — the
// closest pack example, termfx-morfx's internal/db/encrypt.go, uses
// AES-GCM for at-rest encryption, not hashing — so the hash primitive
// itself is picked directly from spec.md §6's own callout), and
// wflmac256 via HKDF-SHA256 key derivation, grounded on that same
// encrypt.go file's `hkdf.New(sha256.New, secret, salt, info)` idiom.
func cryptoNatives() []*value.NativeFunction {
	return []*value.NativeFunction{
		native("wflhash256", 1, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			if err := checkCryptoInputSize(s); err != nil {
				return nil, err
			}
			sum := sha3.Sum256([]byte(s))
			return value.Text(hex.EncodeToString(sum[:])), nil
		}),
		native("wflhash512", 1, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			if err := checkCryptoInputSize(s); err != nil {
				return nil, err
			}
			sum := sha3.Sum512([]byte(s))
			return value.Text(hex.EncodeToString(sum[:])), nil
		}),
		native("wflhash256_with_salt", 2, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			salt, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			if err := checkCryptoInputSize(s); err != nil {
				return nil, err
			}
			sum := sha3.Sum256(append([]byte(salt), []byte(s)...))
			return value.Text(hex.EncodeToString(sum[:])), nil
		}),
		native("wflmac256", 2, func(args []value.Value) (value.Value, error) {
			s, err := asText(args[0])
			if err != nil {
				return nil, err
			}
			key, err := asText(args[1])
			if err != nil {
				return nil, err
			}
			if err := checkCryptoInputSize(s); err != nil {
				return nil, err
			}
			derived := hkdf.New(sha256.New, []byte(key), nil, []byte("wflmac256"))
			macKey := make([]byte, sha256.Size)
			if _, err := io.ReadFull(derived, macKey); err != nil {
				return nil, werrors.New(werrors.Internal, "key derivation failed: "+err.Error(), werrors.SourceLocation{})
			}
			sum := sha3.Sum256(append(macKey, []byte(s)...))
			return value.Text(hex.EncodeToString(sum[:])), nil
		}),
	}
}
