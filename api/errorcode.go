package api

import "github.com/healthtrack-app/healthtrack-api/tracker"

var (
	errorMessageMap = map[int64]string{
		999:  "internal server error",
		1001: "invalid authorization format",
		1003: "invalid token",

		1010: "invalid parameters",
		1011: "cannot parse request",
		1012: "invalid timezone",

		1400: tracker.ErrPermissionDenied.Error(),
		1401: tracker.ErrSensorUnavailable.Error(),
		1402: tracker.ErrNotTracking.Error(),
		1403: tracker.ErrBusy.Error(),
		1404: tracker.ErrFlushFailed.Error(),
		1405: "failed to load steps",
	}

	errorInternalServer             = errorJSON(999)
	errorInvalidAuthorizationFormat = errorJSON(1001)
	errorInvalidToken               = errorJSON(1003)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)
	errorInvalidTimezone    = errorJSON(1012)

	errorPermissionDenied  = errorJSON(1400)
	errorSensorUnavailable = errorJSON(1401)
	errorNotTracking       = errorJSON(1402)
	errorTrackerBusy       = errorJSON(1403)
	errorSaveSteps         = errorJSON(1404)
	errorLoadSteps         = errorJSON(1405)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
