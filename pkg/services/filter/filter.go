package filter

import (
	"sort"
	"strings"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
)

// Selection is the set of category labels chosen by the caller.
type Selection map[domain.Category]struct{}

func NewSelection(labels ...domain.Category) Selection {
	sel := make(Selection, len(labels))
	for _, l := range labels {
		sel[l] = struct{}{}
	}
	return sel
}

// All selects every known category.
func All() Selection {
	return NewSelection(domain.AllCategories()...)
}

func (s Selection) Contains(c domain.Category) bool {
	_, ok := s[c]
	return ok
}

func (s Selection) IsEmpty() bool {
	return len(s) == 0
}

// Labels returns the selected labels, known categories first in their
// canonical order followed by unknown labels sorted alphabetically.
func (s Selection) Labels() []domain.Category {
	labels := make([]domain.Category, 0, len(s))
	for _, c := range domain.AllCategories() {
		if s.Contains(c) {
			labels = append(labels, c)
		}
	}
	var unknown []domain.Category
	for c := range s {
		if !c.IsKnown() {
			unknown = append(unknown, c)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(labels, unknown...)
}

// Key is a canonical representation used to detect selection changes.
func (s Selection) Key() string {
	labels := s.Labels()
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = string(l)
	}
	return strings.Join(parts, "|")
}

// ByCategory returns the rows whose category is selected, preserving their
// relative order. The input is never modified.
func ByCategory[T domain.Categorized](rows []T, sel Selection) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if sel.Contains(row.GetCategory()) {
			out = append(out, row)
		}
	}
	return out
}

// ParseSelection maps raw request or flag values to a selection. When the
// parameter is absent every category is selected; when it is present but
// blank the selection is empty. Values may be comma separated.
func ParseSelection(values []string, present bool) Selection {
	if !present {
		return All()
	}
	sel := Selection{}
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sel[domain.Category(part)] = struct{}{}
		}
	}
	return sel
}
