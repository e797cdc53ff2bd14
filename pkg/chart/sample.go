package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// UnknownLabel is used for samples that carry no usable label.
const UnknownLabel = "Unknown"

var (
	labelKeys = []string{"_id", "label", "date"}
	valueKeys = []string{"count", "value"}
)

type Sample struct {
	Label string
	Value float64
}

// Series is an ordered list of samples, the order is the horizontal axis order.
type Series []Sample

func (s Series) Len() int {
	return len(s)
}

func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[i] = v.Label
	}
	return out
}

func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = v.Value
	}
	return out
}

// Total returns the sum of all sample values.
func (s Series) Total() float64 {
	var t float64
	for _, v := range s {
		t += v.Value
	}
	return t
}

// FromValues zips labels and values into a series, the shorter slice wins.
func FromValues(labels []string, values []float64) Series {
	n := min(len(labels), len(values))
	out := make(Series, n)
	for i := 0; i < n; i++ {
		out[i] = Sample{Label: labels[i], Value: values[i]}
	}
	return out
}

// Normalize turns loosely shaped API items into a Series. Missing labels
// become UnknownLabel and missing or non numeric values become 0.
func Normalize(items []map[string]any) Series {
	out := make(Series, 0, len(items))
	for _, item := range items {
		out = append(out, Sample{
			Label: labelOf(item),
			Value: valueOf(item),
		})
	}
	return out
}

func labelOf(item map[string]any) string {
	for _, k := range labelKeys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		var s string
		switch t := v.(type) {
		case string:
			s = t
		case fmt.Stringer:
			s = t.String()
		default:
			s = fmt.Sprint(t)
		}
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return UnknownLabel
}

func valueOf(item map[string]any) float64 {
	for _, k := range valueKeys {
		v, ok := item[k]
		if !ok || v == nil {
			continue
		}
		if f, ok := toFloat(v); ok {
			return f
		}
	}
	return 0
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int8:
		f = float64(t)
	case int16:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint8:
		f = float64(t)
	case uint16:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = n
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, true
	}
	return f, true
}
