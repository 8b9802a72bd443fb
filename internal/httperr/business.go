package httperr

import (
	"net/http"

	cr "github.com/cockroachdb/errors"
)

// BusinessError is a rule violation the caller can act on. Code is the stable
// error_code clients see.
type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

// Status is the HTTP status the code is rendered with; unlisted codes are 400.
func (e BusinessError) Status() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusBadRequest
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

// IsBusiness reports whether err wraps a BusinessError with code.
func IsBusiness(err error, code string) bool {
	var be BusinessError
	if cr.As(err, &be) {
		return be.Code == code
	}
	return false
}

// statusByCode maps the business codes that are not plain 400s.
var statusByCode = map[string]int{
	"shop_not_found":       http.StatusNotFound,
	"barber_not_found":     http.StatusNotFound,
	"service_not_found":    http.StatusNotFound,
	"booking_not_found":    http.StatusNotFound,
	"settlement_not_found": http.StatusNotFound,
	"user_not_found":       http.StatusNotFound,

	"slot_unavailable":    http.StatusConflict,
	"settlement_conflict": http.StatusConflict,
	"no_pending_bookings": http.StatusConflict,

	"forbidden":           http.StatusForbidden,
	"invalid_booking_key": http.StatusForbidden,
}
