package slackapi

import (
	"errors"
	"fmt"

	"github.com/slack-go/slack"
)

// Kind classifies an API failure so callers can decide skip-vs-abort
// without string-matching Slack error codes themselves.
type Kind int

const (
	KindUnknown Kind = iota
	KindAuth
	KindNotFound
	KindPermissionDenied
	KindRateLimited
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindPermissionDenied:
		return "permission_denied"
	case KindRateLimited:
		return "rate_limited"
	case KindNetwork:
		return "network"
	default:
		return "unknown"
	}
}

// APIError wraps a Slack API failure with its classification and the
// operation that produced it.
type APIError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("slack %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// KindOf returns the classification of err, or KindUnknown for errors
// that did not come from this package.
func KindOf(err error) Kind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsAuth reports whether err is a credential rejection, which is
// run-fatal for the pipeline.
func IsAuth(err error) bool { return KindOf(err) == KindAuth }

// Slack error codes, per method family, that map onto the taxonomy.
var (
	authCodes = map[string]bool{
		"invalid_auth":     true,
		"not_authed":       true,
		"account_inactive": true,
		"token_revoked":    true,
		"token_expired":    true,
	}
	notFoundCodes = map[string]bool{
		"channel_not_found": true,
		"user_not_found":    true,
		"file_not_found":    true,
	}
	permissionCodes = map[string]bool{
		"missing_scope":                         true,
		"access_denied":                         true,
		"restricted_action":                     true,
		"is_archived":                           true,
		"method_not_supported_for_channel_type": true,
		"user_is_restricted":                    true,
		"not_in_channel":                        true,
	}
)

// classify wraps err as an *APIError for operation op. A nil err stays nil.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var rateErr *slack.RateLimitedError
	if errors.As(err, &rateErr) {
		return &APIError{Kind: KindRateLimited, Op: op, Err: err}
	}

	// slack-go surfaces API-level failures as errors whose message is
	// the Slack error code (e.g. "invalid_auth").
	code := err.Error()
	switch {
	case authCodes[code]:
		return &APIError{Kind: KindAuth, Op: op, Err: err}
	case notFoundCodes[code]:
		return &APIError{Kind: KindNotFound, Op: op, Err: err}
	case permissionCodes[code]:
		return &APIError{Kind: KindPermissionDenied, Op: op, Err: err}
	default:
		return &APIError{Kind: KindNetwork, Op: op, Err: err}
	}
}
