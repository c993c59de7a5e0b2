package consent

import "errors"

var ErrInvalidRecord = errors.New("consent record requires a phone number")
