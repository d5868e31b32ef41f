// Package dataprocessing extracts structured per-student records from a
// corpus of loosely formatted academic transcript text files and derives the
// metrics the downstream hypothesis tests consume.
//
// The pipeline per document is: decode the filename into a StudentIdentity,
// segment the raw text into labeled blocks, extract grade entries and
// narrative records from the matching blocks, and aggregate per-student
// volatility. The corpus driver runs every document inside a fault boundary:
// a document either contributes rows to the output tables or an entry to the
// error log, never neither.
package dataprocessing
