package apperr

import "net/http"

// Error codes shared with API clients. These strings are part of the wire
// contract; do not rename them without versioning the API.
const (
	CodeInvalidEntry        = "INVALID_ENTRY"
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidParameter    = "INVALID_PARAMETER"
	CodeInvalidTeamID       = "INVALID_TEAM_ID"
	CodeNoEntryInDB         = "NO_ENTRY_IN_DB"
	CodeNoMatchingEntity    = "NO_MATCHING_ENTITY"
	CodeEntryConflict       = "ENTRY_CONFLICT"
	CodeUnauthorizedRequest = "UNAUTHORIZED_REQUEST"
	CodeInvalidOperation    = "INVALID_OPERATION"
	CodeInvalidEntity       = "INVALID_ENTITY"
	CodeUnknown             = "UNKNOWN_ERROR"
)

const unknownMessage = "Unknown error has occurred"

func InvalidEntry(message string) *Error {
	return New(http.StatusUnprocessableEntity, CodeInvalidEntry, message)
}

func InvalidRequest(message string) *Error {
	return New(http.StatusUnprocessableEntity, CodeInvalidRequest, message)
}

func InvalidParameter(message string) *Error {
	return New(http.StatusUnprocessableEntity, CodeInvalidParameter, message)
}

func InvalidTeamID(message string) *Error {
	return New(http.StatusUnprocessableEntity, CodeInvalidTeamID, message)
}

func NoEntryInDB(message string) *Error {
	return New(http.StatusNotFound, CodeNoEntryInDB, message)
}

func NoEntryInDBUnprocessable(message string) *Error {
	return New(http.StatusUnprocessableEntity, CodeNoEntryInDB, message)
}

func NoMatchingEntity(message string) *Error {
	return New(http.StatusNotFound, CodeNoMatchingEntity, message)
}

func EntryConflict(message string) *Error {
	return New(http.StatusConflict, CodeEntryConflict, message)
}

// UnauthorizedRequest is a role-check failure raised by the membership engine
// guards. Clients depend on the 422 status here; do not change it.
func UnauthorizedRequest(message string) *Error {
	return New(http.StatusUnprocessableEntity, CodeUnauthorizedRequest, message)
}

// UnauthorizedLead is the lead gate rejection. Clients expect 409 for this.
func UnauthorizedLead(message string) *Error {
	return New(http.StatusConflict, CodeUnauthorizedRequest, message)
}

// UnauthorizedMember is the member gate rejection.
func UnauthorizedMember(message string) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorizedRequest, message)
}

func InvalidOperation(message string) *Error {
	return New(http.StatusUnprocessableEntity, CodeInvalidOperation, message)
}

// InvalidOperationForbidden covers founder demotion, which clients expect as
// a 403 rather than the usual 422.
func InvalidOperationForbidden(message string) *Error {
	return New(http.StatusForbidden, CodeInvalidOperation, message)
}

func InvalidEntity(message string) *Error {
	return New(http.StatusUnprocessableEntity, CodeInvalidEntity, message)
}

// Unknown redacts the underlying failure behind a generic message.
func Unknown() *Error {
	return New(http.StatusBadRequest, CodeUnknown, unknownMessage)
}
