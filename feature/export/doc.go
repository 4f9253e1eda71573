// Package export writes the application table to CSV and JSON artifacts.
//
// The CSV has a header row with the table's column names followed by one line per
// record; NULL columns are empty cells. The JSON is a pretty-printed array of records
// with NULL columns rendered as null.
//
// When object storage is configured, both artifacts are also uploaded as
// {prefix}{name}.csv and {prefix}{name}.json, creating the bucket if needed.
package export
