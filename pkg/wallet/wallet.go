// Package wallet holds what the wallet generations share: how a body is
// authorized and how a signature is attached to it. Generation-specific
// action grammars live in the walletv4, walletv5beta and walletv5r1
// subpackages.
package wallet

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/pkg/errors"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

const (
	OpAuthExtension      uint64 = 0x6578746e
	OpAuthSignedExternal uint64 = 0x7369676e
	OpAuthSignedInternal uint64 = 0x73696e74

	// DefaultTimeout is added to the current time when no valid_until is given.
	DefaultTimeout = 60 * time.Second

	// NoExpiration is written as valid_until for the deployment message.
	NoExpiration uint32 = 0xffffffff

	SignatureSize = ed25519.SignatureSize
)

type AuthType string

const (
	AuthExternal  AuthType = "external"
	AuthInternal  AuthType = "internal"
	AuthExtension AuthType = "extension"
)

func (a AuthType) Validate() error {
	switch a {
	case AuthExternal, AuthInternal, AuthExtension:
		return nil
	default:
		return errors.Errorf("unknown auth type %q", string(a))
	}
}

// SignedOpcode returns the body opcode for the signed auth types.
func (a AuthType) SignedOpcode() (uint64, error) {
	switch a {
	case AuthExternal:
		return OpAuthSignedExternal, nil
	case AuthInternal:
		return OpAuthSignedInternal, nil
	default:
		return 0, errors.Errorf("auth type %q is not signed", string(a))
	}
}

// ValidUntil computes the expiration written into a signing message.
// Seqno 0 deploys the wallet and never expires.
func ValidUntil(seqno uint32, timeout uint32, now time.Time) uint32 {
	if seqno == 0 {
		return NoExpiration
	}
	if timeout != 0 {
		return timeout
	}

	return uint32(now.Add(DefaultTimeout).Unix())
}

type Signer interface {
	Sign(ctx context.Context, payload *cell.Cell) ([]byte, error)
}

// KeySigner signs payload hashes with an in-memory ed25519 key.
type KeySigner struct {
	key ed25519.PrivateKey
}

func NewKeySigner(key ed25519.PrivateKey) (*KeySigner, error) {
	if len(key) != ed25519.PrivateKeySize {
		return nil, errors.Errorf("invalid private key size %d", len(key))
	}

	return &KeySigner{key: key}, nil
}

// NewKeySignerFromSeed derives the key from a 32-byte seed.
func NewKeySignerFromSeed(seed []byte) (*KeySigner, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, errors.Errorf("invalid seed size %d", len(seed))
	}

	return &KeySigner{key: ed25519.NewKeyFromSeed(seed)}, nil
}

func (s *KeySigner) PublicKey() ed25519.PublicKey {
	return s.key.Public().(ed25519.PublicKey)
}

func (s *KeySigner) Sign(_ context.Context, payload *cell.Cell) ([]byte, error) {
	if payload == nil {
		return nil, errors.New("nil payload")
	}

	return ed25519.Sign(s.key, payload.Hash()), nil
}

// Verify checks a signature produced over the payload hash.
func Verify(pub ed25519.PublicKey, payload *cell.Cell, signature []byte) bool {
	return len(pub) == ed25519.PublicKeySize && ed25519.Verify(pub, payload.Hash(), signature)
}

// PackSignatureFront builds signature || payload, the v4 body layout.
func PackSignatureFront(payload *cell.Cell, signature []byte) (*cell.Cell, error) {
	if len(signature) != SignatureSize {
		return nil, errors.Errorf("invalid signature size %d", len(signature))
	}

	b := cell.BeginCell()
	if err := b.StoreSlice(signature, SignatureSize*8); err != nil {
		return nil, errors.Wrap(err, "failed to store signature")
	}
	if err := b.StoreBuilder(payload.ToBuilder()); err != nil {
		return nil, errors.Wrap(err, "failed to store signing message")
	}

	return b.EndCell(), nil
}

// PackSignatureTail builds payload || signature, the v5 body layout.
func PackSignatureTail(payload *cell.Cell, signature []byte) (*cell.Cell, error) {
	if len(signature) != SignatureSize {
		return nil, errors.Errorf("invalid signature size %d", len(signature))
	}

	b := payload.ToBuilder()
	if err := b.StoreSlice(signature, SignatureSize*8); err != nil {
		return nil, errors.Wrap(err, "failed to store signature")
	}

	return b.EndCell(), nil
}

// SignBody signs payload and attaches the signature with pack.
func SignBody(
	ctx context.Context,
	signer Signer,
	payload *cell.Cell,
	pack func(*cell.Cell, []byte) (*cell.Cell, error),
) (*cell.Cell, error) {
	sig, err := signer.Sign(ctx, payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign payload")
	}

	body, err := pack(payload, sig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to pack signature")
	}

	return body, nil
}

// SplitSignatureFront separates a v4 body into the signature and the signed payload.
func SplitSignatureFront(body *cell.Cell) (*cell.Cell, []byte, error) {
	if body == nil {
		return nil, nil, errors.New("nil body")
	}

	s := body.BeginParse()
	sig, err := s.LoadSlice(SignatureSize * 8)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load signature")
	}

	payload, err := s.ToCell()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load signing message")
	}

	return payload, sig, nil
}

// SplitSignatureTail separates a v5 body into the signed payload and the signature.
func SplitSignatureTail(body *cell.Cell) (*cell.Cell, []byte, error) {
	if body == nil {
		return nil, nil, errors.New("nil body")
	}

	s := body.BeginParse()
	if s.BitsLeft() < SignatureSize*8 {
		return nil, nil, errors.Errorf("body is too short for a signature: %d bits", s.BitsLeft())
	}

	dataBits := s.BitsLeft() - SignatureSize*8
	data, err := s.LoadSlice(dataBits)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load signing message")
	}
	sig, err := s.LoadSlice(SignatureSize * 8)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load signature")
	}

	b := cell.BeginCell()
	if err = b.StoreSlice(data, dataBits); err != nil {
		return nil, nil, errors.Wrap(err, "failed to rebuild signing message")
	}
	for s.RefsNum() > 0 {
		ref, err := s.LoadRefCell()
		if err != nil {
			return nil, nil, errors.Wrap(err, "failed to load reference")
		}
		if err = b.StoreRef(ref); err != nil {
			return nil, nil, errors.Wrap(err, "failed to rebuild signing message")
		}
	}

	return b.EndCell(), sig, nil
}
