package app_error

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// HTTPStatusError is implemented by every domain error so controllers can
// map them to a response without knowing the concrete type.
type HTTPStatusError interface {
	error
	HTTPStatus() int
}

type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) HTTPStatus() int {
	return 400
}

func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func (e *AuthorizationError) HTTPStatus() int {
	return 403
}

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) HTTPStatus() int {
	return 404
}

type LockedError struct {
	Message string
}

func (e *LockedError) Error() string {
	return e.Message
}

func (e *LockedError) HTTPStatus() int {
	return 409
}

// MissingEntry identifies a (contestant, criterion) pair a judge has not
// scored yet.
type MissingEntry struct {
	ContestantId int `json:"contestant_id"`
	CriterionId  int `json:"criterion_id"`
}

type IncompleteScoresError struct {
	Missing []MissingEntry
}

func (e *IncompleteScoresError) Error() string {
	return fmt.Sprintf("submission is incomplete: %d entries missing", len(e.Missing))
}

func (e *IncompleteScoresError) HTTPStatus() int {
	return 409
}

// Handle writes err as a JSON response. Domain errors carry their own
// status, anything else is a 500.
func Handle(c *gin.Context, err error) {
	if incomplete, ok := err.(*IncompleteScoresError); ok {
		c.JSON(incomplete.HTTPStatus(), gin.H{"error": incomplete.Error(), "missing": incomplete.Missing})
		return
	}
	if statusErr, ok := err.(HTTPStatusError); ok {
		c.JSON(statusErr.HTTPStatus(), gin.H{"error": statusErr.Error()})
		return
	}
	c.JSON(500, gin.H{"error": err.Error()})
}
