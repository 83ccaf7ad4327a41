package search

import (
	"context"
	"fmt"
	"time"

	"github.com/RoaringBitmap/roaring/roaring64"

	"github.com/eppi-vis/dashboard/pkg/eppi"
	"github.com/eppi-vis/dashboard/pkg/taxonomy"
)

// TextField is the item field free-text arms are searched on.
const TextField = "TitleAbstract"

// RecordSource retrieves records for a set of attributes, OR'ed.
type RecordSource interface {
	ByAttributesOr(ctx context.Context, attributes []taxonomy.Attribute) ([]eppi.Record, []int, error)
}

// TextSource retrieves records for a free-text query.
type TextSource interface {
	ListByText(ctx context.Context, field, query string) ([]eppi.Record, error)
}

// Evaluator executes a submitted search against the review database.
type Evaluator struct {
	Model   *taxonomy.Model
	Records RecordSource
	Text    TextSource
}

// Result of an executed search: the folded record set, a human-readable log
// of what was searched, and warnings for anything that could not be
// resolved.
type Result struct {
	Records       []eppi.Record `json:"records"`
	Documentation []string      `json:"documentation"`
	Warnings      []string      `json:"warnings"`
}

// Execute evaluates the arms strictly left to right. Each free-text arm
// queries the text-search endpoint; each selection arm resolves its display
// names back to attributes and retrieves their records OR'ed. Between arms
// the accumulated result is folded with the operator attached to the later
// arm: AND keeps accumulated records whose itemId also appears in the new
// arm, anything else unions with first-occurrence-wins deduplication. There
// is no precedence grouping.
func (e *Evaluator) Execute(ctx context.Context, s *Search) (*Result, error) {
	result := &Result{
		Documentation: []string{
			fmt.Sprintf("The following searches were carried out on %s",
				time.Now().Format("2006-01-02 at 15:04:05")),
		},
	}

	var accumulated []eppi.Record
	for i, arm := range s.Arms {
		result.Documentation = append(result.Documentation, fmt.Sprintf(">>> ARM %d:", i+1))

		armRecords, err := e.evaluateArm(ctx, arm, result)
		if err != nil {
			return nil, err
		}
		result.Documentation = append(result.Documentation,
			fmt.Sprintf("%d results for this arm.", len(armRecords)))

		if i == 0 {
			accumulated = armRecords
			continue
		}

		if s.Operators[i] == OpAnd {
			accumulated = intersect(accumulated, armRecords)
		} else {
			accumulated = union(accumulated, armRecords)
		}
		result.Documentation = append(result.Documentation,
			fmt.Sprintf("Using [%s]: <%d> aggregated results between this and the previous arm.",
				s.Operators[i], len(accumulated)))
	}

	result.Records = accumulated
	return result, nil
}

func (e *Evaluator) evaluateArm(ctx context.Context, arm Arm, result *Result) ([]eppi.Record, error) {
	if arm.Kind == KindFreeText {
		records, err := e.Text.ListByText(ctx, TextField, arm.Query)
		if err != nil {
			return nil, err
		}
		result.Documentation = append(result.Documentation,
			fmt.Sprintf("Searched query <%s> on field <%s> and retrieved %d results",
				arm.Query, TextField, len(records)))
		return records, nil
	}

	parent, ok := e.Model.FindParentByName(arm.Parent)
	if !ok {
		warn := (&ResolutionError{Name: arm.Parent}).Error()
		result.Warnings = append(result.Warnings, warn)
		result.Documentation = append(result.Documentation, "Warning: "+warn)
		return nil, nil
	}

	var selected []taxonomy.Attribute
	for _, name := range arm.Values {
		attr, ok := e.Model.FindUnderParent(name, parent.ID)
		if !ok {
			warn := (&ResolutionError{Name: name, Parent: arm.Parent}).Error()
			result.Warnings = append(result.Warnings, warn)
			result.Documentation = append(result.Documentation, "Warning: "+warn)
			continue
		}
		selected = append(selected, attr)
	}

	if len(selected) == 0 {
		result.Documentation = append(result.Documentation,
			"Warning: No Attribute and no queries found for this search")
		return nil, nil
	}

	records, counts, err := e.Records.ByAttributesOr(ctx, selected)
	if err != nil {
		return nil, err
	}
	for j, attr := range selected {
		result.Documentation = append(result.Documentation,
			fmt.Sprintf("Searched <%s> and retrieved %d results", attr.Name, counts[j]))
	}
	return records, nil
}

// intersect keeps the accumulated records whose itemId also occurs in next,
// preserving accumulated order and field values.
func intersect(accumulated, next []eppi.Record) []eppi.Record {
	ids := roaring64.New()
	for _, rec := range next {
		ids.Add(uint64(rec.ItemID))
	}

	var kept []eppi.Record
	for _, rec := range accumulated {
		if ids.Contains(uint64(rec.ItemID)) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// union concatenates and deduplicates by itemId, first occurrence wins.
func union(accumulated, next []eppi.Record) []eppi.Record {
	seen := roaring64.New()
	merged := make([]eppi.Record, 0, len(accumulated)+len(next))
	for _, rec := range accumulated {
		if seen.Contains(uint64(rec.ItemID)) {
			continue
		}
		seen.Add(uint64(rec.ItemID))
		merged = append(merged, rec)
	}
	for _, rec := range next {
		if seen.Contains(uint64(rec.ItemID)) {
			continue
		}
		seen.Add(uint64(rec.ItemID))
		merged = append(merged, rec)
	}
	return merged
}
