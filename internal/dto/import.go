package dto

// FailedRow records one CSV row that could not be imported.
// RowNumber is 1-based, counting data rows after the header.
type FailedRow struct {
	RowNumber int    `json:"rowNumber"`
	Reason    string `json:"reason"`
}

// ImportResult is the per-row manifest returned by the CSV import.
// A row lands in exactly one bucket: imported, skipped (duplicate account
// number, not a failure) or failed.
type ImportResult struct {
	ImportedCount int         `json:"importedCount"`
	SkippedCount  int         `json:"skippedCount"`
	FailedCount   int         `json:"failedCount"`
	Imported      []string    `json:"imported"` // account numbers created
	Skipped       []string    `json:"skipped"`  // duplicate account numbers
	FailedRows    []FailedRow `json:"failedRows"`
}
