// Copyright (c) 2026, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/NVIDIA/nutrition-advisor/pkg/errors"
	"github.com/NVIDIA/nutrition-advisor/pkg/serializer"
)

// HTTPStatusFromCode maps a structured error code to its HTTP status.
func HTTPStatusFromCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeMissingField, apperrors.ErrCodeInvalidType,
		apperrors.ErrCodeOutOfRange, apperrors.ErrCodeInvalidEnum:
		return http.StatusBadRequest
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case apperrors.ErrCodeRateLimitExceeded:
		return http.StatusTooManyRequests
	case apperrors.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func retryableFromCode(code apperrors.ErrorCode) bool {
	switch code {
	case apperrors.ErrCodeTimeout, apperrors.ErrCodeUnavailable,
		apperrors.ErrCodeRateLimitExceeded, apperrors.ErrCodeInternal:
		return true
	default:
		return false
	}
}

// mergeDetails returns a new map holding a then b; b wins on conflicts.
// Returns nil when both are empty.
func mergeDetails(a, b map[string]any) map[string]any {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]any, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// WriteError writes the error envelope. The message doubles as the
// top-level "error" member clients inspect.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message string, retryable bool, details map[string]any) {

	writeErrorResponse(w, r, statusCode, code, message, message, retryable, details)
}

// WriteErrorFromErr writes the error envelope for err. Structured errors keep
// their code, message and context; anything else is reported as an internal
// error carrying the error text.
func WriteErrorFromErr(w http.ResponseWriter, r *http.Request, err error,
	fallbackMessage string, extra map[string]any) {

	var se *apperrors.StructuredError
	if errors.As(err, &se) {
		details := mergeDetails(se.Context, extra)
		text := se.Message
		if se.Cause != nil {
			details = mergeDetails(details, map[string]any{"error": se.Cause.Error()})
			text = se.Message + ": " + se.Cause.Error()
		}
		writeErrorResponse(w, r, HTTPStatusFromCode(se.Code), se.Code, se.Message, text,
			retryableFromCode(se.Code), details)
		return
	}

	details := mergeDetails(extra, map[string]any{"error": err.Error()})
	writeErrorResponse(w, r, http.StatusInternalServerError, apperrors.ErrCodeInternal,
		fallbackMessage, err.Error(), true, details)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int,
	code apperrors.ErrorCode, message, text string, retryable bool, details map[string]any) {

	requestID := RequestID(r.Context())
	if requestID == "" {
		requestID = uuid.New().String()
	}

	errResp := ErrorResponse{
		Error:     text,
		Code:      string(code),
		Message:   message,
		Details:   details,
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
		Retryable: retryable,
	}

	serializer.RespondJSON(w, statusCode, errResp)
}
