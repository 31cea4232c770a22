package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

// decodeLoose decodes an optional JSON body; an empty body is not an error.
func decodeLoose(r *http.Request, dest interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dest)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
