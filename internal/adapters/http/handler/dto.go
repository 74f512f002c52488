package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/ogurasousui/codex-employee-records/internal/core/employee"
	"github.com/shopspring/decimal"
)

// employeeRequest は作成・更新リクエストの JSON 表現です。salary は数値と文字列の両方を受け付けます。
type employeeRequest struct {
	EmpID      string           `json:"empId"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Phone      string           `json:"phone"`
	Department string           `json:"department"`
	Role       string           `json:"role"`
	Salary     *decimal.Decimal `json:"salary"`
	Doj        string           `json:"doj"`
	Status     string           `json:"status"`
}

type employeeResponse struct {
	ID         int64       `json:"id"`
	EmpID      string      `json:"empId"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone"`
	Department string      `json:"department"`
	Role       string      `json:"role"`
	Salary     json.Number `json:"salary"`
	Doj        string      `json:"doj"`
	Status     string      `json:"status"`
}

type fieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error  string               `json:"error"`
	Fields []fieldErrorResponse `json:"fields,omitempty"`
}

// fields はリクエストを業務項目に変換します。形式不正の項目は ValidationError に積みます。
func (r employeeRequest) fields() (employee.Fields, *employee.ValidationError) {
	verr := &employee.ValidationError{}

	f := employee.Fields{
		Name:       r.Name,
		Email:      r.Email,
		Phone:      r.Phone,
		Department: r.Department,
		Role:       r.Role,
		Status:     employee.Status(r.Status),
	}

	if r.Salary == nil {
		verr.Add("salary", "must not be blank")
	} else {
		f.Salary = *r.Salary
	}

	if doj := strings.TrimSpace(r.Doj); doj != "" {
		parsed, err := time.Parse(employee.DateLayout, doj)
		if err != nil {
			verr.Add("doj", "must be formatted as YYYY-MM-DD")
		} else {
			f.DateOfJoining = parsed
		}
	}

	return f, verr
}

func (r employeeRequest) toCreateInput() (employee.CreateEmployeeInput, error) {
	f, verr := r.fields()
	in := employee.CreateEmployeeInput{EmpID: r.EmpID, Fields: f}
	if verr.HasErrors() {
		verr.Merge(employee.ValidateCreate(in))
		return in, verr
	}
	return in, nil
}

func (r employeeRequest) toUpdateInput(empID string) (employee.UpdateEmployeeInput, error) {
	f, verr := r.fields()
	in := employee.UpdateEmployeeInput{EmpID: empID, Fields: f}

	if bodyID := strings.TrimSpace(r.EmpID); bodyID != "" && bodyID != strings.TrimSpace(empID) {
		verr.Add("empId", "cannot be changed")
	}

	if verr.HasErrors() {
		verr.Merge(employee.ValidateUpdate(in))
		return in, verr
	}
	return in, nil
}

func toEmployeeResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:         e.ID,
		EmpID:      e.EmpID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Role:       e.Role,
		Salary:     json.Number(e.Salary.String()),
		Doj:        e.DateOfJoining.Format(employee.DateLayout),
		Status:     string(e.Status),
	}
}

func toEmployeeResponses(list []*employee.Employee) []employeeResponse {
	out := make([]employeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, toEmployeeResponse(e))
	}
	return out
}
