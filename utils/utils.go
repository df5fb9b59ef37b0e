package utils

import (
	"encoding/json"
	"github.com/MarselErlan/supabase-02-api/models"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/teris-io/shortid"
	"io"
	"math/rand"
	"net/http"
)

// ErrorIDHeader carries the id under which a failed request was logged
const ErrorIDHeader = "X-Error-ID"

// ErrTrailingData is returned by ParseBody when the body holds more than one JSON value
var ErrTrailingData = errors.New("unexpected data after JSON value")

var generator *shortid.Shortid

func init() {
	g, err := shortid.New(1, shortid.DefaultABC, rand.Uint64())
	if err != nil {
		logrus.Panicf("Failed to initialize utils package with error: %+v", err)
	}
	generator = g
}

// ParseBody parses the values from io reader to a given interface. The body
// must hold exactly one JSON value.
func ParseBody(body io.Reader, out interface{}) error {
	decoder := json.NewDecoder(body)
	if err := decoder.Decode(out); err != nil {
		return err
	}
	if _, err := decoder.Token(); err != io.EOF {
		return ErrTrailingData
	}
	return nil
}

// EncodeJSONBody writes the JSON body to response writer
func EncodeJSONBody(resp http.ResponseWriter, data interface{}) error {
	return json.NewEncoder(resp).Encode(data)
}

// RespondJSON sends the interface as a JSON
func RespondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		if err := EncodeJSONBody(w, body); err != nil {
			logrus.Errorf("Failed to respond JSON with error: %+v", err)
		}
	}
}

// RespondError logs the error and sends detail to the API caller. Client
// errors are logged at warn level, server errors at error level.
func RespondError(w http.ResponseWriter, statusCode int, err error, detail interface{}) {
	errorID, _ := generator.Generate()
	entry := logrus.WithField("errorId", errorID)
	if statusCode >= http.StatusInternalServerError {
		entry.Errorf("status: %d, detail: %v, err: %+v", statusCode, detail, err)
	} else {
		entry.Warnf("status: %d, detail: %v, err: %v", statusCode, detail, err)
	}
	if errorID != "" {
		w.Header().Set(ErrorIDHeader, errorID)
	}
	RespondJSON(w, statusCode, models.ErrorResponse{Detail: detail})
}
