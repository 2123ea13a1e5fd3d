package timesheet

import "errors"

// Timesheet domain errors
var (
	// Creation errors
	ErrOverlappingSheet = errors.New("an attendance sheet already covers part of this period for the employee")
	ErrInvalidPeriod    = errors.New("date_from must not be after date_to")

	// Computation errors. Both are fatal: the sheet is left untouched.
	ErrMissingCalendar = errors.New("employee has no work calendar for the period")
	ErrMissingPolicy   = errors.New("no attendance policy configured for the employee")

	// Lifecycle errors
	ErrSheetNotFound     = errors.New("attendance sheet not found")
	ErrLineNotFound      = errors.New("attendance sheet line not found")
	ErrInvalidTransition = errors.New("invalid sheet state transition")
	ErrSheetNotDeletable = errors.New("approved attendance sheets cannot be deleted")
	ErrAdjustmentNote    = errors.New("a note is required when adjusting a sheet line")
)
