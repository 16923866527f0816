// Package errors provides structured error handling for skald's auxiliary
// surfaces. The narration and compaction pipelines never fail; coded errors
// appear only where callers configure the engine or mint identifiers.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Config errors
	CodeConfigParse             Code = "CONFIG_PARSE"
	CodeConfigInvalidHistoryCap Code = "CONFIG_INVALID_HISTORY_CAP"
	CodeConfigInvalidSimilarity Code = "CONFIG_INVALID_SIMILARITY_THRESHOLD"
	CodeConfigInvalidCharBudget Code = "CONFIG_INVALID_CHAR_BUDGET"

	// Identifier errors
	CodeIDGenerate Code = "ID_GENERATE"

	// Payload errors
	CodePayloadDecode Code = "PAYLOAD_DECODE"
)
