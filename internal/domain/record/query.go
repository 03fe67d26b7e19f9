package record

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Operator names follow the collaborator contract.
type Operator string

const (
	OpEqualTo              Operator = "EqualTo"
	OpNotEqualTo           Operator = "NotEqualTo"
	OpContains             Operator = "Contains"
	OpGreaterThanOrEqualTo Operator = "GreaterThanOrEqualTo"
)

// Condition is a single field predicate. Values holds at least one operand;
// the condition matches when it holds for any of the values.
type Condition struct {
	Field  string
	Op     Operator
	Values []any
}

// ConditionGroup combines conditions with an explicit operator ("AND"/"OR").
type ConditionGroup struct {
	Operator   string
	Conditions []Condition
}

// Order is one sort key.
type Order struct {
	Field string
	Desc  bool
}

// Paging is offset/limit paging. Limit <= 0 means unlimited.
type Paging struct {
	Limit  int
	Offset int
}

// Query describes a table read. Fields is advisory (adapters may return full
// rows). Where conditions are AND-ed; each entry of WhereGroups must also hold,
// evaluated per its own operator.
type Query struct {
	Fields      []string
	Where       []Condition
	WhereGroups []ConditionGroup
	OrderBy     []Order
	Paging      *Paging
	GroupBy     []string
}

// Match reports whether rec satisfies all predicates of q.
func (q Query) Match(rec Record) bool {
	for _, c := range q.Where {
		if !c.match(rec) {
			return false
		}
	}
	for _, g := range q.WhereGroups {
		if !g.match(rec) {
			return false
		}
	}
	return true
}

// Apply evaluates the whole query against an in-memory row set: filter,
// group-by distinct, sort, page. Shared by the remote-store adapter (for
// predicates the backend cannot push down) and the in-memory test store, so
// both speak one semantics.
func Apply(recs []Record, q Query) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if q.Match(r) {
			out = append(out, r)
		}
	}

	if len(q.GroupBy) > 0 {
		out = distinctBy(out, q.GroupBy)
	}

	if len(q.OrderBy) > 0 {
		sortRecords(out, q.OrderBy)
	}

	if p := q.Paging; p != nil {
		if p.Offset > 0 {
			if p.Offset >= len(out) {
				return []Record{}
			}
			out = out[p.Offset:]
		}
		if p.Limit > 0 && p.Limit < len(out) {
			out = out[:p.Limit]
		}
	}
	return out
}

func (g ConditionGroup) match(rec Record) bool {
	if len(g.Conditions) == 0 {
		return true
	}
	if strings.EqualFold(strings.TrimSpace(g.Operator), "OR") {
		for _, c := range g.Conditions {
			if c.match(rec) {
				return true
			}
		}
		return false
	}
	for _, c := range g.Conditions {
		if !c.match(rec) {
			return false
		}
	}
	return true
}

func (c Condition) match(rec Record) bool {
	got := rec[c.Field]
	for _, want := range c.Values {
		if c.matchOne(got, want) {
			return true
		}
	}
	return false
}

func (c Condition) matchOne(got, want any) bool {
	switch c.Op {
	case OpEqualTo:
		return looseEqual(got, want)
	case OpNotEqualTo:
		return !looseEqual(got, want)
	case OpContains:
		return strings.Contains(
			strings.ToLower(toString(got)),
			strings.ToLower(toString(want)),
		)
	case OpGreaterThanOrEqualTo:
		g, ok1 := toFloat(got)
		w, ok2 := toFloat(want)
		return ok1 && ok2 && g >= w
	}
	return false
}

// looseEqual compares numerically when both sides are numbers (the wire does
// not distinguish int from float) and falls back to string comparison.
func looseEqual(a, b any) bool {
	if fa, ok1 := toFloat(a); ok1 {
		if fb, ok2 := toFloat(b); ok2 {
			return fa == fb
		}
	}
	return toString(a) == toString(b)
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format(time.RFC3339)
	}
	return ""
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}

func sortRecords(recs []Record, orders []Order) {
	sort.SliceStable(recs, func(i, j int) bool {
		for _, o := range orders {
			cmp := compareValues(recs[i][o.Field], recs[j][o.Field])
			if cmp == 0 {
				continue
			}
			if o.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareValues(a, b any) int {
	if fa, ok1 := toFloat(a); ok1 {
		if fb, ok2 := toFloat(b); ok2 {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(toString(a), toString(b))
}

func distinctBy(recs []Record, fields []string) []Record {
	seen := map[string]bool{}
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, toString(r[f]))
		}
		key := strings.Join(parts, "\x00")
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
