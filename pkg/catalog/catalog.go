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
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/NVIDIA/nutrition-advisor/pkg/serializer"
)

// LabelColumn is the column every food item must carry.
const LabelColumn = "label"

// FoodItem is one catalog row. Columns other than label are passed through
// to responses unchanged.
type FoodItem map[string]any

// Label returns the item's category label.
func (f FoodItem) Label() string {
	s, _ := f[LabelColumn].(string)
	return s
}

// Catalog is the read-only food table loaded at startup.
type Catalog struct {
	items   []FoodItem
	records []map[string]any
}

// New builds a Catalog. Every item needs a non-empty string label.
func New(items []FoodItem) (*Catalog, error) {
	if len(items) == 0 {
		return nil, errors.New("food catalog is empty")
	}
	records := make([]map[string]any, len(items))
	for i, item := range items {
		v, ok := item[LabelColumn]
		if !ok {
			return nil, fmt.Errorf("food item %d has no %q column", i, LabelColumn)
		}
		if s, isString := v.(string); !isString || s == "" {
			return nil, fmt.Errorf("food item %d has an invalid %q value %v", i, LabelColumn, v)
		}
		records[i] = item
	}
	return &Catalog{items: items, records: records}, nil
}

// Parse decodes a catalog named name. A .csv name is read as a CSV table,
// anything else as a JSON or YAML list of objects.
func Parse(name string, data []byte) (*Catalog, error) {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		items, err := ParseCSV(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
		}
		return New(items)
	}

	items, err := serializer.Unmarshal[[]FoodItem](serializer.FormatFromPath(name), data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", name, err)
	}
	return New(*items)
}

// ParseCSV reads a headered CSV table. Cells that parse as numbers become
// float64, empty cells become nil and everything else stays a string.
func ParseCSV(r io.Reader) ([]FoodItem, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv has no header")
		}
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var items []FoodItem
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv line %d: %w", line, err)
		}

		item := make(FoodItem, len(header))
		for i, col := range header {
			if col == LabelColumn {
				item[col] = row[i]
				continue
			}
			item[col] = parseCell(row[i])
		}
		items = append(items, item)
	}
	return items, nil
}

func parseCell(s string) any {
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	return s
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Item returns row i.
func (c *Catalog) Item(i int) FoodItem {
	return c.items[i]
}

// Records returns the rows as plain maps, in catalog order, for encoders.
// Callers must not modify them.
func (c *Catalog) Records() []map[string]any {
	return c.records
}

// Labels returns the distinct labels in sorted order.
func (c *Catalog) Labels() []string {
	seen := make(map[string]struct{})
	for _, item := range c.items {
		seen[item.Label()] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
