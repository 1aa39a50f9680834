package utils

import "errors"

var ErrorInvalidAmount = errors.New("invalid amount")
