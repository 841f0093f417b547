package handler

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const minPasswordLen = 8

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	otpPattern   = regexp.MustCompile(`^[0-9]{4}$`)
)

// validate returns the first non-nil check as an InvalidArgument status.
func validate(checks ...error) error {
	for _, err := range checks {
		if err != nil {
			return status.Error(codes.InvalidArgument, err.Error())
		}
	}
	return nil
}

func blank(v string) bool {
	return strings.TrimSpace(v) == ""
}

func required(field, v string) error {
	if blank(v) {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func checkEmail(email string) error {
	if blank(email) {
		return fmt.Errorf("email is required")
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

func checkPassword(field, password string) error {
	if blank(password) {
		return fmt.Errorf("%s is required", field)
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("%s must be at least %d characters", field, minPasswordLen)
	}
	return nil
}

func checkOTP(code string) error {
	if blank(code) {
		return fmt.Errorf("otp is required")
	}
	if !otpPattern.MatchString(code) {
		return fmt.Errorf("otp must be 4 digits")
	}
	return nil
}
