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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_FirstHeaderWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusBadRequest)

	assert.Equal(t, http.StatusCreated, rw.Status())
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestResponseWriter_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := newResponseWriter(rec)

	n, err := rw.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, rw.Status())
	assert.Equal(t, 5, rw.BytesWritten())
}

func TestResponseWriter_ReusesWrapped(t *testing.T) {
	rec := httptest.NewRecorder()
	outer := newResponseWriter(rec)
	inner := newResponseWriter(outer)

	inner.WriteHeader(http.StatusTeapot)

	assert.Same(t, outer, inner)
	assert.Equal(t, http.StatusTeapot, outer.Status())
	assert.Equal(t, rec, outer.Unwrap())
}
