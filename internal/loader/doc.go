// Package loader parses raw survey exports (CSV and Excel workbooks)
// into the in-memory table model. Format detection is extension based;
// parsing never reorders columns or rows.
package loader
