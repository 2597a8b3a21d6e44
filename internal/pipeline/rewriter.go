package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"surveyclean/internal/table"
)

// ApplyRules runs the ordered rule set against the table header. Row
// count and cell values are never touched; renames only change the key a
// cell is addressed by. The table is mutated in place.
func ApplyRules(t *table.Table, rules []ColumnRule) error {
	for _, rule := range rules {
		switch rule.Kind {
		case DropColumn:
			t.Drop(rule.Name) // absence is a no-op

		case MoveToFront:
			if !t.MoveToFront(rule.Name) {
				if rule.Required {
					return &FatalStructureError{Column: rule.Name}
				}
			}

		case RenameColumn:
			if !t.HasColumn(rule.Name) {
				continue // not all exports carry this column
			}
			if err := t.Rename(rule.Name, rule.NewName); err != nil {
				return fmt.Errorf("rename %q: %w", rule.Name, err)
			}

		case SuffixRange:
			if err := applySuffix(t, rule); err != nil {
				return err
			}

		default:
			return fmt.Errorf("unknown rule kind %d", rule.Kind)
		}
	}
	return nil
}

func applySuffix(t *table.Table, rule ColumnRule) error {
	// Snapshot the header first; renaming while iterating the live
	// header would skip columns.
	for _, name := range t.Columns() {
		n, ok := questionNumber(name)
		if !ok || n < rule.Lo || n > rule.Hi {
			continue
		}
		if err := t.Rename(name, name+rule.Suffix); err != nil {
			return fmt.Errorf("suffix %q: %w", name, err)
		}
	}
	return nil
}

// questionNumber parses names of the exact form "Q<integer>". Anything
// else - suffixed variants, free-text columns, lowercase q - does not
// participate in range tagging.
func questionNumber(name string) (int, bool) {
	if len(name) < 2 || !strings.HasPrefix(name, "Q") {
		return 0, false
	}
	n, err := strconv.Atoi(name[1:])
	if err != nil || n < 0 {
		return 0, false
	}
	// Reject forms like "Q01" so the rewrite never invents new names for
	// columns the export didn't label canonically.
	if strconv.Itoa(n) != name[1:] {
		return 0, false
	}
	return n, true
}
