package employee

import (
	"errors"
	"strings"
)

var (
	ErrInvalidEmpID       = errors.New("employee: invalid emp id")
	ErrEmployeeNotFound   = errors.New("employee: not found")
	ErrEmpIDAlreadyExists = errors.New("employee: emp id already exists")
)

// FieldError は入力項目ひとつ分の検証エラーです。
type FieldError struct {
	Field   string
	Message string
}

// ValidationError は入力検証で見つかったすべての項目エラーを保持します。
type ValidationError struct {
	Fields []FieldError
}

// Add は項目エラーを追加します。
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Merge は other の項目エラーを取り込みます。既にエラーを持つ項目は追加しません。
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for _, f := range other.Fields {
		if e.has(f.Field) {
			continue
		}
		e.Fields = append(e.Fields, f)
	}
}

func (e *ValidationError) has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// HasErrors は項目エラーが 1 件以上あるかを返します。
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Err は項目エラーがあれば自身を、なければ nil を返します。
func (e *ValidationError) Err() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "employee: validation failed: " + strings.Join(parts, "; ")
}
