// Package pipeline implements the survey-export cleaning core: a fixed,
// ordered column rewrite (drop, anchor, rename, range tagging) followed
// by per-row derivation of the Semester and Pre/Post classification
// columns from StartDate.
//
// Processing is synchronous and stateless: one table in, one freshly
// cloned table out, no memory between invocations. File-level structure
// problems (missing anchor column) abort the file with a
// FatalStructureError; row-level date problems never do - the row is
// kept with blank derived cells.
package pipeline
