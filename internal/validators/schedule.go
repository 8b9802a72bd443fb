// Package validators holds the custom binding tags used by request DTOs.
package validators

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register installs the "hhmm" and "ymd" tags on v.
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", hhmm); err != nil {
		return err
	}
	return v.RegisterValidation("ymd", ymd)
}

// RegisterGin installs the tags on gin's default binding engine.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

// IsHHMM reports whether s is a zero-padded 24h "HH:mm" time.
func IsHHMM(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsYMD reports whether s is a real "YYYY-MM-DD" date.
func IsYMD(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func hhmm(fl validator.FieldLevel) bool {
	return IsHHMM(fl.Field().String())
}

func ymd(fl validator.FieldLevel) bool {
	return IsYMD(fl.Field().String())
}
