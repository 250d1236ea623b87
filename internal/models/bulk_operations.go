package models

// BulkInsertResult summarizes a createMany with skip-duplicates semantics.
// Skipped rows are counted, not reported individually.
type BulkInsertResult struct {
	OperationID string `json:"operation_id"`
	Requested   int    `json:"requested"`
	Inserted    int    `json:"inserted"`
	Skipped     int    `json:"skipped"`
}

// BulkUpdateResult carries the affected-row count of an updateMany. A zero
// count is a success, not an error.
type BulkUpdateResult struct {
	OperationID  string `json:"operation_id"`
	UpdatedCount int64  `json:"updatedCount"`
}

// BulkDeleteResult carries the affected-row count of a deleteMany.
type BulkDeleteResult struct {
	OperationID  string `json:"operation_id"`
	DeletedCount int64  `json:"deletedCount"`
}
