package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status は社員の在籍状態を表します。値は自由文字列として保持し、既知の値は定数で提供します。
type Status string

const (
	StatusActive   Status = "Active"
	StatusOnLeave  Status = "On Leave"
	StatusResigned Status = "Resigned"
)

// DateLayout は入社日の文字列表現です。
const DateLayout = "2006-01-02"

// Employee は社員エンティティです。
type Employee struct {
	ID            int64
	EmpID         string
	Name          string
	Email         string
	Phone         string
	Department    string
	Role          string
	Salary        decimal.Decimal
	DateOfJoining time.Time
	Status        Status
}

// Fields は社員の業務項目のうち更新可能なものをまとめたものです。
type Fields struct {
	Name          string
	Email         string
	Phone         string
	Department    string
	Role          string
	Salary        decimal.Decimal
	DateOfJoining time.Time
	Status        Status
}

// apply は f の値で e の更新可能項目をすべて上書きします。ID と EmpID は変更しません。
func (e *Employee) apply(f Fields) {
	e.Name = f.Name
	e.Email = f.Email
	e.Phone = f.Phone
	e.Department = f.Department
	e.Role = f.Role
	e.Salary = f.Salary
	e.DateOfJoining = normalizeDate(f.DateOfJoining)
	e.Status = f.Status
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
