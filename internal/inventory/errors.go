package inventory

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// ErrUpstreamUnavailable marks a failed call to an external API.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrBalancerNotFound is returned when a named load balancer exists in neither
// the classic nor the v2 API.
var ErrBalancerNotFound = errors.New("load balancer not found")

func upstream(err error) error {
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}

// APIErrorCode extracts the service error code from err, or "" when err did
// not come from an AWS API.
func APIErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
