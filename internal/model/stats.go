package model

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"
)

// Общие ключи статов. Набор открытый — данные могут вводить свои ключи.
const (
	StatHP      = "hp"
	StatMP      = "mp"
	StatSP      = "sp"
	StatAttack  = "atk"
	StatDefense = "def"
)

// Stats — вектор статов с семантикой значения.
// Отсутствующий ключ читается как 0. Операции Add/Negate/Clone
// возвращают новый вектор и не изменяют получателя.
type Stats map[string]int32

// Get returns the component for key (0 when absent).
func (s Stats) Get(key string) int32 {
	return s[key]
}

// Has reports whether key is explicitly present.
func (s Stats) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// With returns a copy with key set to value.
func (s Stats) With(key string, value int32) Stats {
	out := s.Clone()
	out[key] = value
	return out
}

// Clone returns an independent copy. Clone of nil is an empty vector.
func (s Stats) Clone() Stats {
	out := make(Stats, len(s))
	maps.Copy(out, s)
	return out
}

// Add returns the component-wise sum s + other.
// Components saturate at the int32 bounds instead of wrapping around.
func (s Stats) Add(other Stats) Stats {
	out := s.Clone()
	for k, v := range other {
		out[k] = saturate(int64(out[k]) + int64(v))
	}
	return out
}

// Negate returns -s. -MinInt32 saturates to MaxInt32.
func (s Stats) Negate() Stats {
	out := make(Stats, len(s))
	for k, v := range s {
		out[k] = saturate(-int64(v))
	}
	return out
}

func saturate(v int64) int32 {
	return int32(min(max(v, math.MinInt32), math.MaxInt32))
}

// IsZero reports whether every component is zero.
func (s Stats) IsZero() bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// Equal compares component-wise, treating missing keys as zero.
func (s Stats) Equal(other Stats) bool {
	for k, v := range s {
		if other[k] != v {
			return false
		}
	}
	for k, v := range other {
		if s[k] != v {
			return false
		}
	}
	return true
}

// Greater reports whether s is strictly greater than other on every key
// named in other. This is the affordability order: an entity can pay a
// cost only when each costed stat stays strictly above the cost.
// An empty other is always exceeded.
func (s Stats) Greater(other Stats) bool {
	for k, v := range other {
		if s[k] <= v {
			return false
		}
	}
	return true
}

// Keys returns the present keys in sorted order.
func (s Stats) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}

// String renders the vector as {k:v, ...} with sorted keys.
func (s Stats) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range s.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s:%d", k, s[k])
	}
	b.WriteByte('}')
	return b.String()
}
