package share

import "errors"

var ErrGrantExists = errors.New("share grant already exists")
