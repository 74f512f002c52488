package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/codex-employee-records/internal/core/employee"
	pgdb "github.com/ogurasousui/codex-employee-records/internal/platform/db/postgres"
	"github.com/shopspring/decimal"
)

const (
	employeeUniqueViolationCode = "23505"
	employeeCheckViolationCode  = "23514"
	numericValueOutOfRangeCode  = "22003"
)

const employeeColumns = `id, emp_id, name, email, phone, department, role, salary::text, doj, status`

const (
	listEmployeesQuery = `SELECT ` + employeeColumns + `
          FROM employees
         ORDER BY id`

	findEmployeeByEmpIDQuery = `SELECT ` + employeeColumns + `
          FROM employees
         WHERE emp_id = $1
         LIMIT 1`

	existsEmployeeByEmpIDQuery = `SELECT EXISTS (SELECT 1 FROM employees WHERE emp_id = $1)`

	countEmployeesQuery = `SELECT COUNT(*) FROM employees`

	insertEmployeeQuery = `INSERT INTO employees (emp_id, name, email, phone, department, role, salary, doj, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7::numeric, $8, $9)
        RETURNING ` + employeeColumns

	updateEmployeeQuery = `UPDATE employees
           SET name = $1,
               email = $2,
               phone = $3,
               department = $4,
               role = $5,
               salary = $6::numeric,
               doj = $7,
               status = $8
         WHERE id = $9
        RETURNING ` + employeeColumns

	deleteEmployeeByEmpIDQuery = `DELETE FROM employees WHERE emp_id = $1`
)

// EmployeeRepository は PostgreSQL を利用した社員永続化の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// List は社員を id 昇順で全件取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, listEmployeesQuery)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translateEmployeePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateEmployeePgError(err)
	}

	return employees, nil
}

// FindByEmpID は社員番号で社員を取得します。
func (r *EmployeeRepository) FindByEmpID(ctx context.Context, empID string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	found, err := scanEmployee(exec.QueryRow(ctx, findEmployeeByEmpIDQuery, empID))
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// ExistsByEmpID は社員番号が登録済みかを返します。
func (r *EmployeeRepository) ExistsByEmpID(ctx context.Context, empID string) (bool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var exists bool
	if err := exec.QueryRow(ctx, existsEmployeeByEmpIDQuery, empID).Scan(&exists); err != nil {
		return false, translateEmployeePgError(err)
	}
	return exists, nil
}

// Count は登録済み社員数を返します。
func (r *EmployeeRepository) Count(ctx context.Context) (int, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	var count int
	if err := exec.QueryRow(ctx, countEmployeesQuery).Scan(&count); err != nil {
		return 0, translateEmployeePgError(err)
	}
	return count, nil
}

// Create は社員を新規作成します。社員番号の重複は UNIQUE 制約で検出します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, insertEmployeeQuery,
		e.EmpID,
		e.Name,
		e.Email,
		e.Phone,
		e.Department,
		e.Role,
		e.Salary.String(),
		dateOnly(e.DateOfJoining),
		string(e.Status),
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return created, nil
}

// Update は社員の更新可能項目を上書きします。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, updateEmployeeQuery,
		e.Name,
		e.Email,
		e.Phone,
		e.Department,
		e.Role,
		e.Salary.String(),
		dateOnly(e.DateOfJoining),
		string(e.Status),
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

// DeleteByEmpID は社員番号に一致する社員を削除します。該当がなくてもエラーにしません。
func (r *EmployeeRepository) DeleteByEmpID(ctx context.Context, empID string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, deleteEmployeeByEmpIDQuery, empID); err != nil {
		return translateEmployeePgError(err)
	}
	return nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		emp    employee.Employee
		salary string
		doj    time.Time
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
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	amount, err := decimal.NewFromString(salary)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse salary %q: %w", salary, err)
	}

	emp.Salary = amount
	emp.DateOfJoining = dateOnly(doj)
	emp.Status = employee.Status(status)
	return &emp, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case employeeUniqueViolationCode:
			return employee.ErrEmpIDAlreadyExists
		case employeeCheckViolationCode:
			verr := &employee.ValidationError{}
			verr.Add("salary", "must not be negative")
			return verr
		case numericValueOutOfRangeCode:
			verr := &employee.ValidationError{}
			verr.Add("salary", "is out of range")
			return verr
		}
	}

	return err
}

func dateOnly(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
