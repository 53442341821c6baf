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

package assessment

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/NVIDIA/nutrition-advisor/pkg/defaults"
	apperrors "github.com/NVIDIA/nutrition-advisor/pkg/errors"
	"github.com/NVIDIA/nutrition-advisor/pkg/serializer"
	"github.com/NVIDIA/nutrition-advisor/pkg/server"
)

// HandleProcess serves POST /process. The body is read as JSON regardless
// of its content type.
func (s *Service) HandleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		server.WriteError(w, r, http.StatusMethodNotAllowed, apperrors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, defaults.MaxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var raw map[string]any
	err := dec.Decode(&raw)
	if err == nil {
		if extra := dec.Decode(&struct{}{}); !errors.Is(extra, io.EOF) {
			err = trailingDataError(extra)
		}
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			server.WriteError(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeInvalidRequest,
				"Request body too large", false, map[string]any{"limit": tooLarge.Limit})
			return
		}
		server.WriteErrorFromErr(w, r,
			apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "Invalid JSON body", err), "", nil)
		return
	}

	result, err := s.Process(r.Context(), raw)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to process assessment", nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, result)
}

// trailingDataError keeps a body-limit error intact so it still maps to 413.
func trailingDataError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return err
	}
	return errors.New("unexpected data after the JSON object")
}
