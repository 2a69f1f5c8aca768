package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveNotFound        = errors.New("leave request not found")
	ErrAlreadyProcessed     = errors.New("leave request has already been approved or rejected")
	ErrOverlappingLeave     = errors.New("an approved or pending leave already covers part of this window")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrCannotReviewOwnLeave = errors.New("cannot review your own leave request")
)
