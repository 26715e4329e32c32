package facebook

import (
	"fmt"

	"eventcast/internal/channel"
	"eventcast/internal/pkg/errs"
)

// GraphError is the decoded Graph API error envelope.
type GraphError struct {
	Code    int    `json:"code"`
	Subcode int    `json:"error_subcode"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (e *GraphError) Error() string {
	return fmt.Sprintf("graph error %d (%s): %s", e.Code, e.Type, e.Message)
}

// graphErrorRules classifies Graph failures. Order matters: authentication
// rows sit above the capability/permission rows so an expired token is
// never retried with a different posting strategy. First match wins.
var graphErrorRules = []channel.Rule{
	// Invalid or expired access token (OAuthException). Terminal.
	{CodeMin: 190, CodeMax: 190, Sentinel: errs.ErrAuthentication},
	// Session expired. Terminal.
	{CodeMin: 102, CodeMax: 102, Sentinel: errs.ErrAuthentication},
	{Substr: "access token", Sentinel: errs.ErrAuthentication},
	{Substr: "session has expired", Sentinel: errs.ErrAuthentication},
	// Capability not available on this page/app.
	{CodeMin: 3, CodeMax: 3, Eligible: true, Sentinel: errs.ErrCapability},
	// Permission denied for the requested operation.
	{CodeMin: 10, CodeMax: 10, Eligible: true, Sentinel: errs.ErrCapability},
	// Permissions family.
	{CodeMin: 200, CodeMax: 299, Eligible: true, Sentinel: errs.ErrCapability},
	{Substr: "permission", Eligible: true, Sentinel: errs.ErrCapability},
	{Substr: "capability", Eligible: true, Sentinel: errs.ErrCapability},
}

// Classify resolves a Graph failure: whether it warrants the one
// reduced-capability fallback attempt (a plain feed post), and which
// failure-class sentinel the error should be marked with.
func Classify(code int, message string) (eligible bool, sentinel error) {
	return channel.Classify(graphErrorRules, code, message)
}
