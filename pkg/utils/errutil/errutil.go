package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/forgelab/promptforge/pkg/utils/logging"
	"github.com/forgelab/promptforge/pkg/utils/safe"
)

// Handle logs the error with a message and returns it for the caller
// to surface. All errors, especially 5xx ones, are logged here.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	return err
}

// errorBody is the JSON error envelope of the HTTP API. Details is
// omitted when empty; no stack trace ever reaches the client.
type errorBody struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Details string `json:"details,omitempty"`
}

// HandleHTTP logs the error and writes the JSON error envelope.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	WriteHTTP(ctx, w, err, statusCode, 0, "")
}

// WriteHTTP logs the error and writes the JSON error envelope with
// optional upstream status and details.
func WriteHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode, upstreamStatus int, details string) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	body := errorBody{
		Error:   err.Error(),
		Status:  upstreamStatus,
		Details: details,
	}
	data, marshalErr := json.Marshal(body)
	if marshalErr != nil {
		http.Error(w, err.Error(), statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	safe.Write(ctx, w, data)
}
