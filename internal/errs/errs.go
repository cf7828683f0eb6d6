package errs

import "errors"

var ErrValidation = errors.New("invalid input")
var ErrNotFound = errors.New("entity not found")
var ErrInvalidModule = errors.New("module not in course snapshot")
var ErrTerminalState = errors.New("enrollment is in a terminal state")
var ErrIllegalTransition = errors.New("illegal payment transition")
var ErrAlreadyVerified = errors.New("payment already verified")
var ErrNotVerified = errors.New("payment not verified")
var ErrRefundExceedsAmount = errors.New("refund exceeds payment amount")
var ErrOfferInvalid = errors.New("offer expired or seats exhausted")
var ErrConflict = errors.New("concurrent update lost, retry")
var ErrConsistency = errors.New("enrollment and payment out of sync")
var ErrInvalidToken = errors.New("invalid token")
