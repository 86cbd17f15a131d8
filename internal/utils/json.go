package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBody bounds JSON request bodies; a move or a new game is a few hundred bytes.
const MaxRequestBody = 64 << 10

var ErrTrailingData = errors.New("unexpected data after JSON value")

// DecodeJSONRequest decodes exactly one JSON value from the body into dst.
// Unknown fields are rejected. A body over MaxRequestBody yields *http.MaxBytesError.
func DecodeJSONRequest(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	defer r.Body.Close()

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxRequestBody))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}
	return nil
}

// IsBodyTooLarge reports whether err came from the MaxRequestBody limit.
func IsBodyTooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr)
}
