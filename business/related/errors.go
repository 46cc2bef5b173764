package related

import "errors"

var ErrInvalidProductID = errors.New("invalid product id")
