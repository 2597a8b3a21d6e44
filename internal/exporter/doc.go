// Package exporter serializes cleaned tables back to CSV, optionally with
// a UTF-8 BOM so the output opens correctly in Excel.
package exporter
