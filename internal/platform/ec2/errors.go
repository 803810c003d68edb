package ec2

import (
	"errors"

	"github.com/aws/smithy-go"
)

// ErrImageNotFound is returned when the requested AMI cannot be described.
var ErrImageNotFound = errors.New("image not found")

// IsNotFound checks if an error indicates a resource was not found.
// EC2 reports these eventually consistent, e.g. right after launch.
func IsNotFound(err error) bool {
	return hasErrorCode(err,
		"InvalidGroup.NotFound",
		"InvalidInstanceID.NotFound",
		"InvalidAMIID.NotFound",
		"InvalidAMIID.Unavailable",
	)
}

// IsDuplicate checks if an error indicates the resource or rule already exists.
func IsDuplicate(err error) bool {
	return hasErrorCode(err,
		"InvalidGroup.Duplicate",
		"InvalidPermission.Duplicate",
	)
}

// IsThrottled checks if an error indicates request rate limiting.
func IsThrottled(err error) bool {
	return hasErrorCode(err,
		"RequestLimitExceeded",
		"Throttling",
		"ThrottlingException",
	)
}

func hasErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		for _, c := range codes {
			if code == c {
				return true
			}
		}
	}
	return false
}
