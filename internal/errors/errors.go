// Package errors defines the typed errors surfaced by the gap-filling
// strategies. Each error carries a stable code so callers can match on the
// failure kind without parsing messages.
package errors

import (
	"errors"
	"fmt"
)

// DomainError represents a structured strategy error
type DomainError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Details)
	}
	return e.Message
}

// Is matches two DomainErrors by code, so predefined errors work with
// errors.Is even after details have been attached.
func (e *DomainError) Is(target error) bool {
	var de *DomainError
	if !errors.As(target, &de) {
		return false
	}
	return e.Code == de.Code
}

// New creates a new DomainError with the given code and message
func New(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewWithDetails creates a new DomainError with additional details
func NewWithDetails(code, message string, details interface{}) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

// Predefined error kinds for the cleaning and imputation strategies
var (
	ErrColumnNotFound           = New("COLUMN_NOT_FOUND", "column not found in dataset")
	ErrUndefinedStatistic       = New("UNDEFINED_STATISTIC", "statistic undefined for column")
	ErrInsufficientNeighbors    = New("INSUFFICIENT_NEIGHBORS", "too few observed rows for neighbor search")
	ErrInsufficientTrainingData = New("INSUFFICIENT_TRAINING_DATA", "too few fully observed rows to train regressor")
	ErrUnsortedDepth            = New("UNSORTED_DEPTH", "depth index must be strictly ascending")
	ErrShapeMismatch            = New("SHAPE_MISMATCH", "column length does not match depth index")
)

// Helper constructors for specific error kinds

// ColumnNotFound creates a column lookup error naming the missing column
func ColumnNotFound(column string) *DomainError {
	return NewWithDetails("COLUMN_NOT_FOUND", "column not found in dataset", column)
}

// UndefinedStatistic creates an error for a statistic over an all-missing column
func UndefinedStatistic(column string) *DomainError {
	return NewWithDetails("UNDEFINED_STATISTIC", "statistic undefined for column", column)
}

// InsufficientNeighbors creates an error for a failed neighbor search
func InsufficientNeighbors(column string, row int, have, want int) *DomainError {
	return NewWithDetails("INSUFFICIENT_NEIGHBORS", "too few observed rows for neighbor search",
		fmt.Sprintf("column %s row %d: have %d candidates, need %d", column, row, have, want))
}

// InsufficientTrainingData creates an error for a regressor that cannot be trained
func InsufficientTrainingData(column string, have, want int) *DomainError {
	return NewWithDetails("INSUFFICIENT_TRAINING_DATA", "too few fully observed rows to train regressor",
		fmt.Sprintf("column %s: have %d training rows, need %d", column, have, want))
}
