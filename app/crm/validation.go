package crm

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^(\+\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)
	// compact international numbers such as +1234567890
	intlPhonePattern = regexp.MustCompile(`^\+\d{8,15}$`)

	validate = validator.New()
)

// ValidPhone reports whether phone is in one of the accepted formats.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(phone) || intlPhonePattern.MatchString(phone)
}

// checkFields runs the struct tag rules on an input and reports the first violation.
func checkFields(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return invalidInput(err.Error())
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return invalidInput(fmt.Sprintf("%s is required", fe.Field()))
	case "max":
		return invalidInput(fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
	default:
		return invalidInput(fmt.Sprintf("%s is invalid", fe.Field()))
	}
}

func parseID(id string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// uniqueIDs drops repeated ids, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
