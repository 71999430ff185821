package entity

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrWrongSessionApp = errors.New("session belongs to another application")

	// Document errors
	ErrDocumentNotFound = errors.New("document not found")
	ErrEmptyDocument    = errors.New("document contains no extractable text")
	ErrEmptyTranscript  = errors.New("transcript is empty")

	// File errors
	ErrInvalidFile      = errors.New("invalid file")
	ErrFileTooLarge     = errors.New("file too large")
	ErrInvalidExtension = errors.New("invalid file extension")

	// Statement errors
	ErrNoTransactions = errors.New("no transactions parsed from statement")

	// Dataset errors
	ErrUnknownColumn     = errors.New("unknown column")
	ErrColumnNotNumeric  = errors.New("column is not numeric")
	ErrEmptyDataset      = errors.New("dataset contains no rows")
	ErrUnsupportedFormat = errors.New("unsupported dataset format")

	// Workflow errors
	ErrThreadNotFound    = errors.New("thread not found")
	ErrStageNotApproved  = errors.New("previous stage is not approved")
	ErrWorkflowCompleted = errors.New("workflow is already completed")
	ErrInvalidAction     = errors.New("invalid feedback action")

	// News errors
	ErrArticleNotFound = errors.New("article index out of range")
	ErrNoHeadlines     = errors.New("no headlines fetched yet")

	// Explorer errors
	ErrNoToolCalls = errors.New("planner produced no tool calls")

	// Brokerage errors
	ErrTokenExpired  = errors.New("brokerage access token expired")
	ErrTokenMissing  = errors.New("brokerage access token missing")
	ErrEmptyHoldings = errors.New("no holdings in portfolio")

	// LLM errors
	ErrMalformedLLMReply = errors.New("malformed reply from language model")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
