package service

import (
	"fmt"
	"regexp"

	"secreto/backend/internal/common"
)

var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{3,30}$`)

// validateHandle rejects usernames that could never have been registered.
func validateHandle(handle string) error {
	if !handlePattern.MatchString(handle) {
		return fmt.Errorf("malformed username %q: %w", handle, common.ErrInvalidInput)
	}
	return nil
}
