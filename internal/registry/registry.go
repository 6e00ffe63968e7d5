// Package registry holds the static entity catalog: every metric the
// terminal can address has a canonical key here, with its taxonomy
// group, upstream locator, and optional valuation/correlation wiring.
// The catalog is immutable after process start.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a key resolves to no catalog entry.
var ErrNotFound = errors.New("entity not found")

// Source identifies which upstream snapshot structure backs an entity.
type Source int

const (
	SourceMarket Source = iota
	SourceMacro
	SourceCBRT
	SourceEquityRisk
	SourceGoldCorr
	SourceScorecard
	SourceBanking
	SourceSentiment
	SourceTrade
)

func (s Source) String() string {
	switch s {
	case SourceMarket:
		return "market"
	case SourceMacro:
		return "macro"
	case SourceCBRT:
		return "cbrt"
	case SourceEquityRisk:
		return "equity_risk"
	case SourceGoldCorr:
		return "gold_corr"
	case SourceScorecard:
		return "scorecard"
	case SourceBanking:
		return "banking"
	case SourceSentiment:
		return "sentiment"
	case SourceTrade:
		return "trade"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// MarshalJSON renders the source as its wire name.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Model identifies a fair-value model kind.
type Model int

const (
	ModelPPP Model = iota
	ModelSovereignSpread
	ModelERPYield
)

func (m Model) String() string {
	switch m {
	case ModelPPP:
		return "Relative PPP"
	case ModelSovereignSpread:
		return "Sovereign Spread"
	case ModelERPYield:
		return "Equity Risk Premium"
	default:
		return fmt.Sprintf("model(%d)", int(m))
	}
}

// ValuationSpec declares the fair-value model of an entity and the
// canonical keys of the entities it consumes as inputs.
type ValuationSpec struct {
	Model  Model
	Inputs []string
}

// Entry is one catalog row. TechnicalKey is the locator inside the
// entity's upstream snapshot (a ticker for market entities, a field
// name everywhere else).
type Entry struct {
	Key          string         `json:"key"`
	Name         string         `json:"name"`
	Group        string         `json:"group"`
	TechnicalKey string         `json:"technical_key"`
	Source       Source         `json:"source"`
	Unit         string         `json:"unit"`
	Valuation    *ValuationSpec `json:"-"`
	Correlations []string       `json:"correlations,omitempty"`
	Chartable    bool           `json:"chartable,omitempty"`
	Explain      string         `json:"explain,omitempty"`
}

// Registry is the read-only catalog. Safe for concurrent use without
// locking; nothing mutates it after New.
type Registry struct {
	entries map[string]Entry
	groups  map[string][]string
	order   []string
}

// New builds the catalog and its group index. Duplicate keys panic:
// the catalog is compiled in, so a duplicate is a programming error.
func New() *Registry {
	r := &Registry{
		entries: make(map[string]Entry, len(catalog)),
		groups:  make(map[string][]string),
	}
	for _, e := range catalog {
		if _, dup := r.entries[e.Key]; dup {
			panic("registry: duplicate entity key " + e.Key)
		}
		r.entries[e.Key] = e
		r.groups[e.Group] = append(r.groups[e.Group], e.Key)
		r.order = append(r.order, e.Key)
	}
	return r
}

// Resolve returns the entry for key, or ErrNotFound.
func (r *Registry) Resolve(key string) (Entry, error) {
	e, ok := r.entries[strings.ToLower(strings.TrimPrefix(strings.TrimSpace(key), "@"))]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return e, nil
}

// Group returns all entries of a taxonomy group in catalog order.
func (r *Registry) Group(group string) []Entry {
	keys := r.groups[group]
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.entries[k])
	}
	return out
}

// Keys returns every canonical key in catalog order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Match is one search hit. Kind is "exact", "group" or "fuzzy".
type Match struct {
	Entry Entry  `json:"entry"`
	Kind  string `json:"match_type"`
}

const maxSearchResults = 15

// Search looks a query up across keys, names, groups and explanations.
// An exact key match wins outright; a group name expands to the whole
// group; otherwise substring hits are ranked key > name > explanation.
func (r *Registry) Search(query string) []Match {
	q := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(query), "@"))
	if q == "" {
		return nil
	}

	if e, ok := r.entries[q]; ok {
		return []Match{{Entry: e, Kind: "exact"}}
	}

	if keys, ok := r.groups[q]; ok {
		out := make([]Match, 0, len(keys))
		for _, k := range keys {
			out = append(out, Match{Entry: r.entries[k], Kind: "group"})
		}
		return out
	}

	type scored struct {
		m     Match
		score int
		pos   int
	}
	var hits []scored
	for i, key := range r.order {
		e := r.entries[key]
		score := 0
		switch {
		case strings.Contains(key, q):
			score = 3
		case strings.Contains(strings.ToLower(e.Name), q):
			score = 2
		case strings.Contains(strings.ToLower(e.Group), q),
			strings.Contains(strings.ToLower(e.Explain), q):
			score = 1
		}
		if score > 0 {
			hits = append(hits, scored{m: Match{Entry: e, Kind: "fuzzy"}, score: score, pos: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].pos < hits[j].pos
	})
	if len(hits) > maxSearchResults {
		hits = hits[:maxSearchResults]
	}
	out := make([]Match, len(hits))
	for i, h := range hits {
		out[i] = h.m
	}
	return out
}
