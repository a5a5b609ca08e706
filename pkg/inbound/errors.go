package inbound

import "errors"

var ErrNilSubmitter = errors.New("inbound: submitter cannot be nil")
