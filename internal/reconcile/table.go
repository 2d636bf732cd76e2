package reconcile

import "strings"

// Table is the parsed divergence table: Rows[0] is always the header and
// every row, header included, has exactly FieldCount fields. Row order is
// the oracle's order; the ascending date/value sort is part of the oracle
// contract and is not re-enforced here.
type Table struct {
	Rows [][]string
}

func (t Table) RowCount() int {
	if len(t.Rows) <= 1 {
		return 0
	}
	return len(t.Rows) - 1
}

func (t Table) HasDivergences() bool {
	return t.RowCount() > 0
}

// ParseTable turns sanitized table text into a Table, repairing whatever the
// oracle got wrong on the way. Repairs run in a fixed order per data row:
// padRow, mergeOverflow, backfillDescriptions; then exact duplicates are
// dropped. Malformed input is never an error here; a degraded table beats a
// failed run.
func ParseTable(tableText string) Table {
	var lines []string
	for _, l := range strings.Split(tableText, "\n") {
		if l = strings.TrimSpace(strings.TrimSuffix(l, "\r")); l != "" {
			lines = append(lines, l)
		}
	}

	if len(lines) == 0 {
		return Table{Rows: [][]string{headerFields()}}
	}

	rows := make([][]string, 0, len(lines))
	for idx, line := range lines {
		cols := strings.Split(line, ";")
		for i := range cols {
			cols[i] = strings.TrimSpace(cols[i])
		}

		if idx == 0 {
			// Header: force the width, never touch the text.
			rows = append(rows, padRow(cols)[:FieldCount])
			continue
		}

		cols = padRow(cols)
		cols = mergeOverflow(cols)
		cols = backfillDescriptions(cols)
		rows = append(rows, cols)
	}

	return Table{Rows: dedupe(rows)}
}

// padRow fills short rows with empty fields up to FieldCount.
func padRow(cols []string) []string {
	for len(cols) < FieldCount {
		cols = append(cols, "")
	}
	return cols
}

// mergeOverflow folds any surplus fields into the ledger description
// (field 4). Overflow is usually a description the oracle split on a stray
// semicolon, so keeping the text there loses nothing.
func mergeOverflow(cols []string) []string {
	if len(cols) <= FieldCount {
		return cols
	}
	extras := cols[FieldCount:]
	cols = cols[:FieldCount]
	cols[3] = strings.TrimSpace(cols[3] + " " + strings.Join(extras, " "))
	return cols
}

// backfillDescriptions infers empty description fields from the origin tag:
// a ledger-only row gets the absent-from-statement sentinel (and
// symmetrically); anything else undeterminable becomes a dash.
func backfillDescriptions(cols []string) []string {
	origin := strings.ToUpper(cols[4])

	if cols[2] == "" {
		if origin == OriginLedger {
			cols[2] = AbsentFromStatement
		} else {
			cols[2] = PlaceholderDash
		}
	}
	if cols[3] == "" {
		if origin == OriginStatement {
			cols[3] = AbsentFromLedger
		} else {
			cols[3] = PlaceholderDash
		}
	}
	return cols
}

// dedupe drops data rows whose full 5-field tuple repeats, case-insensitive.
// First occurrence wins.
func dedupe(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return rows
	}
	out := rows[:1]
	seen := make(map[string]struct{}, len(rows)-1)
	for _, row := range rows[1:] {
		key := strings.ToLower(strings.Join(row, "|"))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}
