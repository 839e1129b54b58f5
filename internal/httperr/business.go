package httperr

import "errors"

// BusinessError is a per-request domain failure identified by a stable
// code. Detail optionally carries human-readable context, e.g. the
// offending time range of a validation failure.
type BusinessError struct {
	Code   string
	Detail string
}

func (e BusinessError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return e.Code + ": " + e.Detail
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessf(code, detail string) error {
	return BusinessError{Code: code, Detail: detail}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func BusinessDetail(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Detail
	}
	return ""
}
