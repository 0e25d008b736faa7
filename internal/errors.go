package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"
	ErrorTypeConflict   ErrorType = "CONFLICT"
	ErrorTypeInternal   ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidBody      ErrorCode = "INVALID_BODY"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"

	ErrCodeRequiredFields       ErrorCode = "REQUIRED_FIELDS_MISSING"
	ErrCodeEmailRequired        ErrorCode = "EMAIL_REQUIRED"
	ErrCodeEmailDateRequired    ErrorCode = "EMAIL_DATE_REQUIRED"
	ErrCodeUserEmailRequired    ErrorCode = "USER_EMAIL_REQUIRED"
	ErrCodeAlreadyCheckedIn     ErrorCode = "ALREADY_CHECKED_IN"
	ErrCodeNoCheckIn            ErrorCode = "NO_CHECK_IN"
	ErrCodeAbsentCheckout       ErrorCode = "ABSENT_CHECKOUT"
	ErrCodeAlreadyCheckedOut    ErrorCode = "ALREADY_CHECKED_OUT"
	ErrCodeCheckInFirst         ErrorCode = "CHECK_IN_FIRST"
	ErrCodeLocationAfterOut     ErrorCode = "LOCATION_AFTER_CHECKOUT"
	ErrCodeNoAbsentRecord       ErrorCode = "NO_ABSENT_RECORD"
	ErrCodePerformanceParams    ErrorCode = "PERFORMANCE_PARAMS_REQUIRED"
	ErrCodeTeamPerformanceParam ErrorCode = "TEAM_PERFORMANCE_PARAMS_REQUIRED"
	ErrCodeNoMonthTarget        ErrorCode = "NO_MONTH_TARGET"
	ErrCodeNoTeamTargets        ErrorCode = "NO_TEAM_TARGETS"

	ErrCodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmailAddressRequired ErrorCode = "EMAIL_ADDRESS_REQUIRED"
	ErrCodeUserExists           ErrorCode = "USER_EXISTS"

	ErrCodeSalesExists   ErrorCode = "SALES_EXISTS"
	ErrCodeSalesNotFound ErrorCode = "SALES_NOT_FOUND"
	ErrCodeInvalidFile   ErrorCode = "INVALID_FILE"

	ErrCodeTargetExists   ErrorCode = "TARGET_EXISTS"
	ErrCodeTargetNotFound ErrorCode = "TARGET_NOT_FOUND"

	ErrCodeUserIDsRequired   ErrorCode = "USER_IDS_REQUIRED"
	ErrCodeManagerEmail      ErrorCode = "MANAGER_EMAIL_REQUIRED"
	ErrCodeNoValidUsers      ErrorCode = "NO_VALID_USERS"
	ErrCodeTeamMemberMissing ErrorCode = "TEAM_MEMBER_NOT_FOUND"

	ErrCodeStatusRequired ErrorCode = "STATUS_REQUIRED"
	ErrCodeTaskNotFound   ErrorCode = "TASK_NOT_FOUND"
	ErrCodeNoticeNotFound ErrorCode = "NOTICE_NOT_FOUND"
	ErrCodeTicketNotFound ErrorCode = "TICKET_NOT_FOUND"

	ErrCodeLeaveNotFound ErrorCode = "LEAVE_NOT_FOUND"

	ErrCodeJobPostNotFound        ErrorCode = "JOB_POST_NOT_FOUND"
	ErrCodeJobPostHasApplications ErrorCode = "JOB_POST_HAS_APPLICATIONS"
	ErrCodeJobPostClosed          ErrorCode = "JOB_POST_CLOSED"
	ErrCodeDeadlinePassed         ErrorCode = "DEADLINE_PASSED"
	ErrCodeJobPostIDRequired      ErrorCode = "JOB_POST_ID_REQUIRED"
	ErrCodeApplicationNotFound    ErrorCode = "APPLICATION_NOT_FOUND"
	ErrCodeInvalidStatus          ErrorCode = "INVALID_STATUS"
	ErrCodeDocumentNotFound       ErrorCode = "DOCUMENT_NOT_FOUND"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage flattens field errors into one line.
func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			return strings.Join(messages, "; ")
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match two AppErrors by code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithCause(cause error) *AppError {
	c := *e
	c.Cause = cause
	return &c
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	c := *e
	c.Details = details
	return &c
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewDuplicateError reports a second daily or monthly record. Clients of this
// API expect a 400 for it rather than a 409.
func NewDuplicateError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       ErrCodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrRequiredFields    = NewValidationError("Required fields missing", ErrCodeRequiredFields)
	ErrEmailRequired     = NewValidationError("Email is required", ErrCodeEmailRequired)
	ErrEmailDateRequired = NewValidationError("Email and date are required", ErrCodeEmailDateRequired)
	ErrUserEmailRequired = NewValidationError("User email is required", ErrCodeUserEmailRequired)
	ErrAlreadyCheckedIn  = NewDuplicateError("Already checked in today", ErrCodeAlreadyCheckedIn)
	ErrNoCheckIn         = NewNotFoundError("No check-in record found for today", ErrCodeNoCheckIn)
	ErrAbsentCheckout    = NewValidationError("Absent records must use auto checkout", ErrCodeAbsentCheckout)
	ErrAlreadyCheckedOut = NewValidationError("Already checked out today", ErrCodeAlreadyCheckedOut)
	ErrCheckInFirst      = NewValidationError("You must check in first before changing location", ErrCodeCheckInFirst)
	ErrLocationAfterOut  = NewValidationError("Cannot change location after checking out", ErrCodeLocationAfterOut)
	ErrNoAbsentRecord    = NewNotFoundError("No absent record found for this user today", ErrCodeNoAbsentRecord)

	ErrPerformanceParams     = NewValidationError("User email, month, and year are required", ErrCodePerformanceParams)
	ErrTeamPerformanceParams = NewValidationError("Manager email, month, and year are required", ErrCodeTeamPerformanceParam)
	ErrNoMonthTarget         = NewNotFoundError("No target found for this month", ErrCodeNoMonthTarget)
	ErrNoTeamTargets         = NewNotFoundError("No targets found for this month", ErrCodeNoTeamTargets)

	ErrUserNotFound         = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrEmailAddressRequired = NewValidationError("Email address is required", ErrCodeEmailAddressRequired)
	ErrUserExists           = NewDuplicateError("User already exists", ErrCodeUserExists)

	ErrSalesExists   = NewDuplicateError("Sales entry already exists for this date", ErrCodeSalesExists)
	ErrSalesNotFound = NewNotFoundError("Sales entry not found", ErrCodeSalesNotFound)
	ErrInvalidFile   = NewValidationError("A spreadsheet file is required", ErrCodeInvalidFile)

	ErrTargetExists   = NewDuplicateError("Target already exists for this month", ErrCodeTargetExists)
	ErrTargetNotFound = NewNotFoundError("Target not found", ErrCodeTargetNotFound)

	ErrUserIDsRequired   = NewValidationError("User IDs array is required and must not be empty", ErrCodeUserIDsRequired)
	ErrManagerEmail      = NewValidationError("Manager email is required (can be empty string for no manager)", ErrCodeManagerEmail)
	ErrNoValidUsers      = NewNotFoundError("No valid users found with the provided IDs", ErrCodeNoValidUsers)
	ErrTeamMemberMissing = NewNotFoundError("User not found in team structure", ErrCodeTeamMemberMissing)

	ErrStatusRequired = NewValidationError("Status is required", ErrCodeStatusRequired)
	ErrTaskNotFound   = NewNotFoundError("Task not found", ErrCodeTaskNotFound)
	ErrNoticeNotFound = NewNotFoundError("Notice not found", ErrCodeNoticeNotFound)
	ErrTicketNotFound = NewNotFoundError("Ticket not found", ErrCodeTicketNotFound)

	ErrLeaveNotFound = NewNotFoundError("Leave request not found", ErrCodeLeaveNotFound)

	ErrJobPostNotFound        = NewNotFoundError("Job post not found", ErrCodeJobPostNotFound)
	ErrJobPostHasApplications = NewValidationError("Cannot delete job post with existing applications. Archive it instead.", ErrCodeJobPostHasApplications)
	ErrJobPostClosed          = NewValidationError("This job post is no longer accepting applications", ErrCodeJobPostClosed)
	ErrDeadlinePassed         = NewValidationError("The deadline for this job post has passed", ErrCodeDeadlinePassed)
	ErrJobPostIDRequired      = NewValidationError("Job post ID is required", ErrCodeJobPostIDRequired)
	ErrApplicationNotFound    = NewNotFoundError("Application not found", ErrCodeApplicationNotFound)
	ErrInvalidStatus          = NewValidationError("Valid status is required", ErrCodeInvalidStatus)
)

// IsAppError finds an AppError anywhere in err's chain.
func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
