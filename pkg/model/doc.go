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

// Package model evaluates exported machine learning artifacts without a
// machine learning runtime.
//
// A Classifier chains a Scaler, a feed-forward Network and a LabelDecoder.
// A Recommender encodes a child record and every food record with a
// FeatureEncoder, embeds them with the two towers of a DualTower and scores
// each pair by cosine similarity.
//
// All types are read-only after construction and safe for concurrent use.
package model
