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

// Package client builds Kubernetes clients for reading model artifacts and
// writing assessment results stored in ConfigMaps.
//
// GetKubeClient caches one client per process:
//
//	c, _, err := client.GetKubeClient()
//	if err != nil {
//	    return fmt.Errorf("failed to get kubernetes client: %w", err)
//	}
//	cm, err := c.CoreV1().ConfigMaps("nutrition").Get(ctx, "model", metav1.GetOptions{})
//
// GetKubeClientWithConfig bypasses the cache for an explicit kubeconfig.
package client
