// Package exporter writes the extraction output to disk.
//
// Four concerns live here:
//
// CSVWriter: core CSV writing with an optional UTF-8 BOM so Excel opens
// Korean text correctly.
//
// Table builders: one header/row pair per output table, flattening the
// domain records into string cells. Absent values become empty cells.
//
// WriteErrorLog: the machine-readable parse error log, one JSON object per
// line, tagged with the run ID.
//
// Service: drives a full export, CSV tables plus error log plus the
// optional combined Excel workbook.
package exporter
