package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/gerritlens/gerritlens/schema"
)

// InnerJoin combines two or more aggregated series into a table keyed by
// window start. Only timestamps present in every input survive; disjoint
// inputs yield an empty table, not an error. The columns slice renames each
// input in order; an empty entry falls back to "measurement.field".
func InnerJoin(inputs []schema.AggregatedSeries, columns []string) (schema.JoinedTable, error) {
	table := schema.JoinedTable{}

	if len(inputs) < 2 {
		return table, fmt.Errorf("inner join needs at least 2 series (received %d)", len(inputs))
	}
	if len(columns) != len(inputs) {
		return table, fmt.Errorf("expected %d column names, received %d", len(inputs), len(columns))
	}

	// --- 1. Resolve column labels ---
	table.Columns = make([]string, len(inputs))
	for i, name := range columns {
		if name == "" {
			name = fmt.Sprintf("%s.%s", inputs[i].Measurement, inputs[i].Field)
		}
		table.Columns[i] = name
	}

	// --- 2. Index values by timestamp per input ---
	valueMaps := make([]map[time.Time]float64, len(inputs))
	for i, in := range inputs {
		valueMaps[i] = make(map[time.Time]float64, len(in.Points))
		for _, p := range in.Points {
			valueMaps[i][p.Start] = p.Value
		}
	}

	// --- 3. Intersect timestamps across all inputs ---
	var shared []time.Time
	for ts := range valueMaps[0] {
		present := true
		for _, vm := range valueMaps[1:] {
			if _, ok := vm[ts]; !ok {
				present = false
				break
			}
		}
		if present {
			shared = append(shared, ts)
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].Before(shared[j]) })

	// --- 4. Build rows in timestamp order ---
	for _, ts := range shared {
		row := schema.JoinedRow{Start: ts, Values: make([]float64, len(inputs))}
		for i, vm := range valueMaps {
			row.Values[i] = vm[ts]
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
