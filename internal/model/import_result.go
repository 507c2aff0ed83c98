package model

// ImportResult summarises one import run.
// Errors holds one message per rejected row, in file order.
type ImportResult struct {
	Saved      int      `json:"saved"`
	Duplicates int      `json:"duplicates"`
	Invalid    int      `json:"invalid"`
	Errors     []string `json:"errors"`
}

// NewImportResult returns an empty result whose Errors encodes as [] rather than null.
func NewImportResult() *ImportResult {
	return &ImportResult{
		Errors: []string{},
	}
}

// AddSaved counts a persisted row.
func (r *ImportResult) AddSaved() {
	r.Saved++
}

// AddDuplicate counts a row skipped as a duplicate and records its message.
func (r *ImportResult) AddDuplicate(message string) {
	r.Duplicates++
	r.Errors = append(r.Errors, message)
}

// AddInvalid counts a row rejected by validation and records its message.
func (r *ImportResult) AddInvalid(message string) {
	r.Invalid++
	r.Errors = append(r.Errors, message)
}

// Total returns the number of rows accounted for.
func (r *ImportResult) Total() int {
	return r.Saved + r.Duplicates + r.Invalid
}
