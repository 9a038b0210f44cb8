// Package status classifies raw boleto settlement statuses into
// PAID / OPEN / UNKNOWN using configurable keyword sets.
package status

import (
	"sort"
	"sync"

	"BoletoReport/boletos/utils"
)

type Category string

const (
	CategoryPaid    Category = "PAID"
	CategoryOpen    Category = "OPEN"
	CategoryUnknown Category = "UNKNOWN"
)

// DefaultPaid and DefaultOpen are the stock keyword sets used when the caller
// does not override them.
var DefaultPaid = []string{
	"PAGO NO DIA",
	"PAGO",
	"LIQUIDADO",
	"BAIXADO",
	"QUITADO",
	"PAGO EM DIA",
}

var DefaultOpen = []string{
	"A VENCER / VENCIDO",
	"VENCIDO",
	"EM ABERTO",
	"ABERTO",
	"A VENCER",
	"PENDENTE",
}

// Classifier matches normalized statuses against two disjoint keyword sets.
// Matching is exact (after case and whitespace folding), never substring:
// an ambiguous status must surface as UNKNOWN rather than being guessed.
type Classifier struct {
	paid map[string]struct{}
	open map[string]struct{}

	mu      sync.Mutex
	unknown map[string]struct{}
}

// NewClassifier builds a classifier from the given keyword lists. Nil or
// empty lists fall back to the defaults.
func NewClassifier(paidList, openList []string) *Classifier {
	c := &Classifier{
		paid:    make(map[string]struct{}),
		open:    make(map[string]struct{}),
		unknown: make(map[string]struct{}),
	}
	if len(paidList) == 0 {
		paidList = DefaultPaid
	}
	if len(openList) == 0 {
		openList = DefaultOpen
	}
	for _, s := range paidList {
		if n := utils.NormalizeText(s); n != "" {
			c.paid[n] = struct{}{}
		}
	}
	for _, s := range openList {
		if n := utils.NormalizeText(s); n != "" {
			c.open[n] = struct{}{}
		}
	}
	return c
}

// Classify returns the normalized status string and its category. It is
// total: every input, including empty, maps to exactly one category.
func (c *Classifier) Classify(raw string) (string, Category) {
	normalized := utils.NormalizeText(raw)
	if normalized == "" {
		return "", CategoryUnknown
	}
	if _, ok := c.paid[normalized]; ok {
		return normalized, CategoryPaid
	}
	if _, ok := c.open[normalized]; ok {
		return normalized, CategoryOpen
	}
	c.mu.Lock()
	c.unknown[normalized] = struct{}{}
	c.mu.Unlock()
	return normalized, CategoryUnknown
}

// UnknownStatuses returns the distinct normalized statuses that did not match
// either set, sorted for stable reporting.
func (c *Classifier) UnknownStatuses() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.unknown))
	for s := range c.unknown {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
