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

package serializer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestParseConfigMapURI(t *testing.T) {
	tests := []struct {
		name      string
		uri       string
		namespace string
		cmName    string
		key       string
		wantErr   bool
	}{
		{"namespace and name", "cm://nutrition/model", "nutrition", "model", "", false},
		{"with key", "cm://nutrition/model/scaler.json", "nutrition", "model", "scaler.json", false},
		{"missing scheme", "nutrition/model", "", "", "", true},
		{"missing name", "cm://nutrition", "", "", "", true},
		{"empty namespace", "cm:///model", "", "", "", true},
		{"empty name", "cm://nutrition/", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns, name, key, err := ParseConfigMapURI(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.namespace, ns)
			assert.Equal(t, tt.cmName, name)
			assert.Equal(t, tt.key, key)
		})
	}
}

func TestReadConfigMap(t *testing.T) {
	c := fake.NewSimpleClientset(&corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "model", Namespace: "nutrition"},
		Data:       map[string]string{"manifest.yaml": "version: 1\n"},
		BinaryData: map[string][]byte{"weights.json": []byte(`{"layers":[]}`)},
	})

	data, err := ReadConfigMap(context.Background(), c, "nutrition", "model")
	require.NoError(t, err)
	assert.Equal(t, "version: 1\n", data["manifest.yaml"])
	assert.Equal(t, `{"layers":[]}`, data["weights.json"])

	_, err = ReadConfigMap(context.Background(), c, "nutrition", "missing")
	assert.Error(t, err)
}

func TestFromConfigMap(t *testing.T) {
	c := fake.NewSimpleClientset(
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "keyed", Namespace: "ns"},
			Data:       map[string]string{"s.json": `{"name":"keyed","count":1}`},
		},
		&corev1.ConfigMap{
			ObjectMeta: metav1.ObjectMeta{Name: "default", Namespace: "ns"},
			Data:       map[string]string{"data.yaml": "name: dflt\ncount: 2\n"},
		},
	)

	got, err := FromConfigMap[sample](context.Background(), c, "cm://ns/keyed/s.json")
	require.NoError(t, err)
	assert.Equal(t, "keyed", got.Name)

	got, err = FromConfigMap[sample](context.Background(), c, "cm://ns/default")
	require.NoError(t, err)
	assert.Equal(t, "dflt", got.Name)

	_, err = FromConfigMap[sample](context.Background(), c, "cm://ns/keyed/absent.json")
	assert.Error(t, err)
}

func TestConfigMapWriter(t *testing.T) {
	c := fake.NewSimpleClientset()
	w := NewConfigMapWriter(c, "ns", "result", FormatYAML)

	require.NoError(t, w.Serialize(context.Background(), sample{Name: "stored", Count: 7}))
	require.NoError(t, w.Close())

	cm, err := c.CoreV1().ConfigMaps("ns").Get(context.Background(), "result", metav1.GetOptions{})
	require.NoError(t, err)
	assert.Equal(t, "yaml", cm.Data["format"])
	assert.Contains(t, cm.Data["data.yaml"], "name: stored")
	assert.NotEmpty(t, cm.Data["timestamp"])
	assert.Equal(t, "nutrition-advisor", cm.Labels["app.kubernetes.io/name"])
}

func TestNewConfigMapWriter_UnknownFormat(t *testing.T) {
	w := NewConfigMapWriter(nil, "ns", "n", Format("xml"))
	assert.Equal(t, FormatJSON, w.format)
}
