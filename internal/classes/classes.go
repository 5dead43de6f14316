// Package classes builds HTML class attribute values.
//
// Join concatenates conditional class fragments the way clsx does. Merge runs
// the joined list through tailwind-merge so that conflicting utilities from
// the same group (two paddings, two background colours) collapse to the one
// that appears last.
package classes

import (
	"sort"
	"strconv"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

// Fragment is one class-name input unit. The set of implementations is closed:
// Class, Cond and Conds.
type Fragment interface {
	appendTo(tokens []string) []string
}

// Class is an unconditional fragment. It may hold several space-separated
// tokens.
type Class string

func (c Class) appendTo(tokens []string) []string {
	return append(tokens, strings.Fields(string(c))...)
}

// Cond includes Name only when On is true.
type Cond struct {
	Name string
	On   bool
}

func (c Cond) appendTo(tokens []string) []string {
	if !c.On {
		return tokens
	}
	return Class(c.Name).appendTo(tokens)
}

// Conds is an ordered conditional map. Unlike map[string]bool it keeps the
// order the caller wrote the entries in.
type Conds []Cond

func (cs Conds) appendTo(tokens []string) []string {
	for _, c := range cs {
		tokens = c.appendTo(tokens)
	}
	return tokens
}

// If is shorthand for Cond{Name: name, On: on}.
func If(on bool, name string) Cond {
	return Cond{Name: name, On: on}
}

// Join flattens args into a single space-separated class list.
//
// Accepted argument shapes are strings, Fragments, map[string]bool (keys are
// visited in sorted order), templ.KeyValue[string, bool], nested []any and
// []string slices, and non-zero integers. Everything else, including nil and
// booleans, is treated as falsy and skipped.
func Join(args ...any) string {
	return strings.Join(collect(nil, args), " ")
}

// Merge joins args like Join and then resolves Tailwind utility conflicts,
// keeping the last class of each conflicting group.
func Merge(args ...any) string {
	joined := Join(args...)
	if joined == "" {
		return ""
	}
	return orderSurvivors(strings.Fields(joined), strings.Fields(twmerge.Merge(joined)))
}

// orderSurvivors sorts the classes twmerge kept by the position of their last
// occurrence in tokens, since twmerge does not preserve input order.
func orderSurvivors(tokens, survivors []string) string {
	last := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		last[tok] = i
	}
	seen := make(map[string]bool, len(survivors))
	kept := survivors[:0]
	for _, s := range survivors {
		if !seen[s] {
			seen[s] = true
			kept = append(kept, s)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		pi, ok := last[kept[i]]
		if !ok {
			pi = len(tokens)
		}
		pj, ok := last[kept[j]]
		if !ok {
			pj = len(tokens)
		}
		if pi != pj {
			return pi < pj
		}
		return kept[i] < kept[j]
	})
	return strings.Join(kept, " ")
}

// Attr returns templ attributes carrying the merged class list, ready to be
// spread onto an element.
func Attr(args ...any) templ.Attributes {
	merged := Merge(args...)
	if merged == "" {
		return templ.Attributes{}
	}
	return templ.Attributes{"class": merged}
}

func collect(tokens []string, args []any) []string {
	for _, arg := range args {
		tokens = appendArg(tokens, arg)
	}
	return tokens
}

func appendArg(tokens []string, arg any) []string {
	switch v := arg.(type) {
	case nil, bool:
		return tokens
	case string:
		return Class(v).appendTo(tokens)
	case Fragment:
		return v.appendTo(tokens)
	case map[string]bool:
		keys := make([]string, 0, len(v))
		for key, on := range v {
			if on {
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		for _, key := range keys {
			tokens = Class(key).appendTo(tokens)
		}
		return tokens
	case templ.KeyValue[string, bool]:
		return Cond{Name: v.Key, On: v.Value}.appendTo(tokens)
	case []templ.KeyValue[string, bool]:
		for _, kv := range v {
			tokens = Cond{Name: kv.Key, On: kv.Value}.appendTo(tokens)
		}
		return tokens
	case []string:
		for _, s := range v {
			tokens = Class(s).appendTo(tokens)
		}
		return tokens
	case []any:
		return collect(tokens, v)
	case int:
		return appendInt(tokens, int64(v))
	case int64:
		return appendInt(tokens, v)
	default:
		return tokens
	}
}

func appendInt(tokens []string, n int64) []string {
	if n == 0 {
		return tokens
	}
	return append(tokens, strconv.FormatInt(n, 10))
}
