// Package sqlite は組み込み SQLite を利用した社員永続化を提供します。
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/ogurasousui/codex-employee-records/internal/core/employee"
	sqlitedb "github.com/ogurasousui/codex-employee-records/internal/platform/db/sqlite"
	"github.com/shopspring/decimal"
)

const employeeColumns = `id, emp_id, name, email, phone, department, role, salary, doj, status`

// EmployeeRepository は SQLite を利用した社員永続化の実装です。
type EmployeeRepository struct {
	db sqlitedb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(db sqlitedb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// List は社員を ID 昇順で返します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	rows, err := exec.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees ORDER BY id`)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateSQLiteError(err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, translateSQLiteError(err)
	}

	return employees, nil
}

// FindByEmpID は社員番号で社員を取得します。
func (r *EmployeeRepository) FindByEmpID(ctx context.Context, empID string) (*employee.Employee, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `SELECT `+employeeColumns+` FROM employees WHERE emp_id = ? LIMIT 1`, empID)
	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return found, nil
}

// ExistsByEmpID は社員番号が登録済みかを返します。
func (r *EmployeeRepository) ExistsByEmpID(ctx context.Context, empID string) (bool, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	var exists bool
	if err := exec.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE emp_id = ?)`, empID).Scan(&exists); err != nil {
		return false, translateSQLiteError(err)
	}
	return exists, nil
}

// Count は登録済みの社員数を返します。
func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	var count int
	if err := exec.QueryRowContext(ctx, `SELECT COUNT(*) FROM employees`).Scan(&count); err != nil {
		return 0, translateSQLiteError(err)
	}
	return count, nil
}

// Create は社員を新規作成します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `
        INSERT INTO employees (emp_id, name, email, phone, department, role, salary, doj, status)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        RETURNING `+employeeColumns,
		e.EmpID,
		e.Name,
		e.Email,
		e.Phone,
		e.Department,
		e.Role,
		e.Salary.String(),
		e.DateOfJoining.Format(employee.DateLayout),
		string(e.Status),
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return created, nil
}

// Update は社員の更新可能項目を上書きします。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	row := exec.QueryRowContext(ctx, `
        UPDATE employees
           SET name = ?, email = ?, phone = ?, department = ?, role = ?, salary = ?, doj = ?, status = ?
         WHERE id = ?
        RETURNING `+employeeColumns,
		e.Name,
		e.Email,
		e.Phone,
		e.Department,
		e.Role,
		e.Salary.String(),
		e.DateOfJoining.Format(employee.DateLayout),
		string(e.Status),
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return updated, nil
}

// DeleteByEmpID は社員番号に一致する社員を削除します。該当がなくてもエラーにしません。
func (r *EmployeeRepository) DeleteByEmpID(ctx context.Context, empID string) error {
	exec := sqlitedb.QueryerFromContext(ctx, r.db)
	if _, err := exec.ExecContext(ctx, `DELETE FROM employees WHERE emp_id = ?`, empID); err != nil {
		return translateSQLiteError(err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*employee.Employee, error) {
	var (
		emp    employee.Employee
		salary string
		doj    string
		status string
	)

	if err := row.Scan(
		&emp.ID,
		&emp.EmpID,
		&emp.Name,
		&emp.Email,
		&emp.Phone,
		&emp.Department,
		&emp.Role,
		&salary,
		&doj,
		&status,
	); err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(salary)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse salary %q: %w", salary, err)
	}

	joined, err := time.Parse(employee.DateLayout, doj)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse doj %q: %w", doj, err)
	}

	emp.Salary = amount
	emp.DateOfJoining = joined
	emp.Status = employee.Status(status)
	return &emp, nil
}

func translateSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return employee.ErrEmpIDAlreadyExists
		}
	}

	return err
}
