package translate

import "errors"

var ErrInvalidMessage = errors.New("invalid slack message")
