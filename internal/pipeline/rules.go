package pipeline

// RuleKind selects what a ColumnRule does to the header.
type RuleKind int

const (
	// DropColumn removes the named column if present; absence is a no-op.
	DropColumn RuleKind = iota
	// MoveToFront moves the named column to position 0. A rule with
	// Required set fails the whole file when the column is absent.
	MoveToFront
	// RenameColumn renames the named column in place if present.
	RenameColumn
	// SuffixRange appends Suffix to every column whose name is exactly
	// "Q<n>" with Lo <= n <= Hi. Names carrying extra characters
	// (Q33_4_TEXT and friends) never match.
	SuffixRange
)

// ColumnRule is one step of the fixed header rewrite. The rule set is
// compile-time configuration: an ordered list, applied strictly in order,
// so a rename can never collide with an earlier drop or move.
type ColumnRule struct {
	Kind     RuleKind
	Name     string // DropColumn, MoveToFront, RenameColumn
	NewName  string // RenameColumn
	Lo, Hi   int    // SuffixRange, inclusive
	Suffix   string // SuffixRange
	Required bool   // MoveToFront: absence is fatal for the file
}

// DefaultRules is the rewrite applied to every survey export, in order:
//
//  1. drop the AE column,
//  2. anchor Q35 at the first position (fatal if missing),
//  3. rename the attention-check question,
//  4. tag the exam question block,
//  5. tag the survey question block.
//
// Rule 5 also matches the anchor, so the first column leaves the
// pipeline as "Q35 - Survey". That makes the rewrite deliberately
// non-idempotent: a second pass cannot find Q35 and fails fast instead
// of silently re-tagging already-cleaned data.
var DefaultRules = []ColumnRule{
	{Kind: DropColumn, Name: "AE"},
	{Kind: MoveToFront, Name: "Q35", Required: true},
	{Kind: RenameColumn, Name: "Q34", NewName: "Attention Check"},
	{Kind: SuffixRange, Lo: 1, Hi: 25, Suffix: " - Exam"},
	{Kind: SuffixRange, Lo: 33, Hi: 44, Suffix: " - Survey"},
}
