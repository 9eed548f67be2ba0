package validator

import (
	"github.com/google/uuid"
)

func checkUUID(param Key, value any, arg any) error {
	if enabled, ok := arg.(bool); ok && !enabled {
		return nil
	}

	switch v := value.(type) {
	case uuid.UUID:
		return nil
	case string:
		// Fast rejection before parsing; uuid.Parse also accepts urn and braced forms.
		if len(v) == 36 && v[8] == '-' && v[13] == '-' && v[18] == '-' && v[23] == '-' {
			if _, err := uuid.Parse(v); err == nil {
				return nil
			}
		}
	}
	return constraintError(param, value, RuleUUID, arg, ErrInvalidFormat,
		"must be a valid UUID",
		"validation.uuid",
		nil,
	)
}
