package codec

import "github.com/pkg/errors"

var (
	ErrMissingParameter        = errors.New("missing required parameter")
	ErrTagMismatch             = errors.New("invalid tag")
	ErrRangeViolation          = errors.New("value out of range")
	ErrStructuralExhaustion    = errors.New("not enough data in cell")
	ErrMixedModeBatch          = errors.New("mixed send modes in transfer batch")
	ErrUnsupportedNestedAction = errors.New("unsupported action in this position")
	ErrTooManyActions          = errors.New("too many actions")
	ErrActionOrder             = errors.New("invalid action order")
	ErrUnknownWalletVersion    = errors.New("unknown wallet version")
)

// IsMalformed reports whether err was caused by malformed input data
// rather than by a missing parameter or an invalid encode request.
func IsMalformed(err error) bool {
	for _, target := range []error{
		ErrTagMismatch,
		ErrRangeViolation,
		ErrStructuralExhaustion,
		ErrMixedModeBatch,
		ErrUnsupportedNestedAction,
		ErrUnknownWalletVersion,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
