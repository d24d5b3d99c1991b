package storage

import (
	"fmt"
	"regexp"
)

// DefaultRegion is used when the configuration leaves the region empty.
const DefaultRegion = "us-west-2"

// regionPattern accepts AWS style region names such as us-east-1,
// eu-central-2, us-gov-west-1 or cn-northwest-1.
var regionPattern = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-[0-9]+$`)

// ResolveRegion returns the region to sign requests with.
func ResolveRegion(region string) (string, error) {
	if region == "" {
		return DefaultRegion, nil
	}
	if !regionPattern.MatchString(region) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRegion, region)
	}
	return region, nil
}
