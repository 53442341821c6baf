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

package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const foodsCSV = "name,label,calories,protein\n" +
	"Tofu,Vegan,76,8\n" +
	"Ayam Goreng,Halal,260,27.5\n" +
	"Tempe,Vegan,,19\n"

func TestParseCSV(t *testing.T) {
	items, err := ParseCSV(strings.NewReader(foodsCSV))
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, "Tofu", items[0]["name"])
	assert.Equal(t, "Vegan", items[0].Label())
	assert.Equal(t, 76.0, items[0]["calories"])
	assert.Equal(t, 27.5, items[1]["protein"])
	assert.Nil(t, items[2]["calories"])
}

func TestParseCSV_Errors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorContains(t, err, "no header")

	_, err = ParseCSV(strings.NewReader("a,b\n1\n"))
	assert.Error(t, err)
}

func TestParseCSV_StripsBOM(t *testing.T) {
	items, err := ParseCSV(strings.NewReader("\ufefflabel,name\nVegan,Tofu\n"))
	require.NoError(t, err)
	assert.Equal(t, "Vegan", items[0].Label())
}

func TestParse(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		c, err := Parse("food_data.csv", []byte(foodsCSV))
		require.NoError(t, err)
		assert.Equal(t, 3, c.Len())
		assert.Equal(t, []string{"Halal", "Vegan"}, c.Labels())
		assert.Equal(t, "Ayam Goreng", c.Item(1)["name"])
		assert.Len(t, c.Records(), 3)
	})

	t.Run("json", func(t *testing.T) {
		c, err := Parse("foods.json", []byte(`[{"label":"Vegan","name":"Tofu"}]`))
		require.NoError(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("yaml", func(t *testing.T) {
		c, err := Parse("foods.yaml", []byte("- label: Halal\n  name: Sate\n"))
		require.NoError(t, err)
		assert.Equal(t, "Halal", c.Item(0).Label())
	})

	t.Run("missing label", func(t *testing.T) {
		_, err := Parse("foods.csv", []byte("name\nTofu\n"))
		assert.ErrorContains(t, err, "label")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Parse("foods.csv", []byte("label,name\n"))
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("numeric label", func(t *testing.T) {
		_, err := Parse("foods.json", []byte(`[{"label":3}]`))
		assert.Error(t, err)
	})
}

func TestParseCSV_NonFiniteCellsStayText(t *testing.T) {
	items, err := ParseCSV(strings.NewReader("label,fiber,sugar\nVegan,NaN,Inf\n"))
	require.NoError(t, err)
	assert.Equal(t, "NaN", items[0]["fiber"])
	assert.Equal(t, "Inf", items[0]["sugar"])
}
