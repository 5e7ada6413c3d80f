package http

import (
	"fmt"
	"net/http"

	"github.com/Bridgeless-Project/ton-kit/pkg/codec"
	"github.com/google/jsonapi"
	"github.com/pkg/errors"
)

func serviceUnavailable(err error) *jsonapi.ErrorObject {
	return &jsonapi.ErrorObject{
		Title:  http.StatusText(http.StatusServiceUnavailable),
		Status: fmt.Sprintf("%d", http.StatusServiceUnavailable),
		Detail: err.Error(),
	}
}

// isBadInput reports whether a decode failure was caused by the submitted data.
func isBadInput(err error) bool {
	return codec.IsMalformed(err) || errors.Is(err, codec.ErrTooManyActions)
}
