// Package dedupe flags suspect duplicate boletos. Detection is advisory:
// flagged records stay in every downstream aggregate, because automatic
// removal risks deleting legitimate distinct bills that share a key.
package dedupe

import (
	"fmt"
	"sort"
	"time"

	"BoletoReport/boletos/cleaning"
)

// Duplicate-rule identifiers stored in Record.DuplicateFlags.
const (
	RuleBankOurNumber        = "bank_our_number"
	RuleBankYourNumberDueAmt = "bank_your_number_due_amount"
)

// Result carries the dedupe annotations plus one finding per suspect group.
type Result struct {
	GroupsByOurNumber  int
	GroupsByYourNumber int
	Findings           []cleaning.Finding
}

// FindDuplicates scans valid records under the two independent keys and
// annotates every member of any group with more than one record. Records are
// modified in place (flags only); the slice length never changes.
func FindDuplicates(records []cleaning.Record) Result {
	res := Result{}

	byOur := make(map[string][]int)
	byYour := make(map[string][]int)
	for i := range records {
		rec := &records[i]
		if !rec.IsValid {
			continue
		}
		if rec.OurNumber != "" {
			key := rec.Bank + "\x00" + rec.OurNumber
			byOur[key] = append(byOur[key], i)
		}
		if rec.YourNumber != "" && rec.DueDate != nil && rec.AmountValid {
			key := rec.Bank + "\x00" + rec.YourNumber + "\x00" +
				rec.DueDate.Format(time.DateOnly) + "\x00" + rec.Amount.String()
			byYour[key] = append(byYour[key], i)
		}
	}

	res.GroupsByOurNumber = flagGroups(records, byOur, RuleBankOurNumber, &res.Findings)
	res.GroupsByYourNumber = flagGroups(records, byYour, RuleBankYourNumberDueAmt, &res.Findings)
	return res
}

func flagGroups(records []cleaning.Record, groups map[string][]int, rule string, findings *[]cleaning.Finding) int {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		if len(groups[k]) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		members := groups[key]
		for _, i := range members {
			if !records[i].HasDuplicateFlag(rule) {
				records[i].DuplicateFlags = append(records[i].DuplicateFlags, rule)
			}
		}
		first := records[members[0]]
		*findings = append(*findings, cleaning.Finding{
			SourceFile: first.SourceFile,
			Line:       first.Line,
			Field:      rule,
			Problem:    fmt.Sprintf("%d records share duplicate key %s", len(members), rule),
			Severity:   cleaning.SeverityWarning,
		})
	}
	return len(keys)
}
