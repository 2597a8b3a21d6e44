// Package table provides the in-memory tabular model shared by the
// loader, pipeline and exporter: ordered unique columns plus ordered
// rows, with every row guaranteed to match the header width.
//
// A Table lives for exactly one cleaning run. It is built once from
// loader output, rewritten in place by the pipeline, and consumed once
// by the exporter; no table is shared between requests.
package table
