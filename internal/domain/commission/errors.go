package commission

import "errors"

var (
	ErrSettingsNotFound  = errors.New("commission settings not found")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
)
