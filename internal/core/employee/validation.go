package employee

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	msgRequired    = "must not be blank"
	msgEmail       = "must be a valid email address"
	msgNonNegative = "must not be negative"
	msgInvalid     = "is invalid"
	msgScale       = "must have at most 2 decimal places"
	msgTooLarge    = "must be less than 10000000000000"
)

// salaryLimit は NUMERIC(15,2) に収まる上限 (この値を含まない) です。
var salaryLimit = decimal.New(1, 13)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldRules は validator に渡す検証用の写像です。
type fieldRules struct {
	EmpID      string `json:"empId" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Department string `json:"department" validate:"required"`
	Role       string `json:"role" validate:"required"`
	Status     string `json:"status" validate:"required"`
}

// ValidateCreate は作成入力を検証し、違反した項目をすべて返します。違反がなければ nil です。
func ValidateCreate(in CreateEmployeeInput) *ValidationError {
	return validateFields(strings.TrimSpace(in.EmpID), in.Fields.normalized())
}

// ValidateUpdate は更新入力の項目を検証します。EmpID はパス由来のため対象外です。
func ValidateUpdate(in UpdateEmployeeInput) *ValidationError {
	// 更新では empId を変更しないため、検証上は常に存在するものとして扱う
	return validateFields("-", in.Fields.normalized())
}

func validateFields(empID string, f Fields) *ValidationError {
	verr := &ValidationError{}

	err := validate.Struct(fieldRules{
		EmpID:      empID,
		Name:       f.Name,
		Email:      f.Email,
		Phone:      f.Phone,
		Department: f.Department,
		Role:       f.Role,
		Status:     string(f.Status),
	})

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			verr.Add(fe.Field(), messageFor(fe.Tag()))
		}
	} else if err != nil {
		verr.Add("employee", err.Error())
	}

	switch {
	case f.Salary.IsNegative():
		verr.Add("salary", msgNonNegative)
	case !f.Salary.Equal(f.Salary.Truncate(2)):
		verr.Add("salary", msgScale)
	case f.Salary.GreaterThanOrEqual(salaryLimit):
		verr.Add("salary", msgTooLarge)
	}
	if f.DateOfJoining.IsZero() {
		verr.Add("doj", msgRequired)
	}

	if !verr.HasErrors() {
		return nil
	}
	return verr
}

func messageFor(tag string) string {
	switch tag {
	case "required":
		return msgRequired
	case "email":
		return msgEmail
	default:
		return msgInvalid
	}
}

func (f Fields) normalized() Fields {
	return Fields{
		Name:          strings.TrimSpace(f.Name),
		Email:         strings.TrimSpace(f.Email),
		Phone:         strings.TrimSpace(f.Phone),
		Department:    strings.TrimSpace(f.Department),
		Role:          strings.TrimSpace(f.Role),
		Salary:        f.Salary,
		DateOfJoining: normalizeDate(f.DateOfJoining),
		Status:        Status(strings.TrimSpace(string(f.Status))),
	}
}
