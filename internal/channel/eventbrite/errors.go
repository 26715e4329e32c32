package eventbrite

import (
	"fmt"

	"eventcast/internal/channel"
	"eventcast/internal/pkg/errs"
)

// APIError is the decoded Eventbrite error envelope.
type APIError struct {
	StatusCode  int    `json:"status_code"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("eventbrite error %d (%s): %s", e.StatusCode, e.Code, e.Description)
}

// apiErrorRules: authentication rows first, then the capability/permission
// family that justifies retrying as an unpublished draft.
var apiErrorRules = []channel.Rule{
	// Missing or invalid OAuth token. Terminal.
	{CodeMin: 401, CodeMax: 401, Sentinel: errs.ErrAuthentication},
	{Substr: "invalid_auth", Sentinel: errs.ErrAuthentication},
	{Substr: "token", Sentinel: errs.ErrAuthentication},
	// Organization lacks the feature or the token lacks the scope.
	{CodeMin: 403, CodeMax: 403, Eligible: true, Sentinel: errs.ErrCapability},
	{Substr: "not_authorized", Eligible: true, Sentinel: errs.ErrCapability},
	{Substr: "permission", Eligible: true, Sentinel: errs.ErrCapability},
	// Live publish rejected (e.g. no ticket classes yet); a draft still works.
	{Substr: "publish", Eligible: true, Sentinel: errs.ErrCapability},
}

// Classify resolves an Eventbrite failure: whether the unpublished-draft
// fallback applies, and which failure-class sentinel to mark the error with.
func Classify(statusCode int, message string) (eligible bool, sentinel error) {
	return channel.Classify(apiErrorRules, statusCode, message)
}
