package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ogurasousui/codex-employee-records/internal/core/employee"
	"github.com/ogurasousui/codex-employee-records/internal/platform/config"
	sqlitedb "github.com/ogurasousui/codex-employee-records/internal/platform/db/sqlite"
	"github.com/ogurasousui/codex-employee-records/internal/platform/migration"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const migrationsDir = "../../../../assets/migrations/sqlite"

type fixture struct {
	repo *EmployeeRepository
	svc  *employee.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	cfg := config.DatabaseConfig{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "employees.db")}
	require.NoError(t, migration.Run(migration.ActionUp, migrationsDir, cfg.MigrateURL(), zerolog.Nop()))

	db, err := sqlitedb.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewEmployeeRepository(db)
	return fixture{
		repo: repo,
		svc:  employee.NewService(repo, sqlitedb.NewTransactionManager(db)),
	}
}

func sampleInput(empID string) employee.CreateEmployeeInput {
	return employee.CreateEmployeeInput{
		EmpID: empID,
		Fields: employee.Fields{
			Name:          "A",
			Email:         "a@x.com",
			Phone:         "1",
			Department:    "D",
			Role:          "R",
			Salary:        decimal.RequireFromString("1000.25"),
			DateOfJoining: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Status:        employee.StatusActive,
		},
	}
}

func TestEmployeeRepository_CreateAndFind(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateEmployee(ctx, sampleInput("E100"))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	found, err := f.repo.FindByEmpID(ctx, "E100")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.True(t, found.Salary.Equal(decimal.RequireFromString("1000.25")))
	assert.True(t, found.DateOfJoining.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, employee.StatusActive, found.Status)

	exists, err := f.repo.ExistsByEmpID(ctx, "E100")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = f.repo.FindByEmpID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_UniqueConstraint(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateEmployee(ctx, sampleInput("E100"))
	require.NoError(t, err)

	// サービスの存在確認を経由せず、制約そのものが重複を拒否することを確認する
	emp := &employee.Employee{
		EmpID:         "E100",
		Name:          "B",
		Email:         "b@x.com",
		Phone:         "2",
		Department:    "D",
		Role:          "R",
		Salary:        decimal.NewFromInt(1),
		DateOfJoining: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Status:        employee.StatusActive,
	}
	_, err = f.repo.Create(ctx, emp)
	assert.ErrorIs(t, err, employee.ErrEmpIDAlreadyExists)

	_, err = f.svc.CreateEmployee(ctx, sampleInput("E100"))
	assert.ErrorIs(t, err, employee.ErrEmpIDAlreadyExists)

	count, err := f.repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEmployeeRepository_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateEmployee(ctx, sampleInput("E100"))
	require.NoError(t, err)

	patch := sampleInput("E100").Fields
	patch.Status = employee.StatusResigned
	patch.Salary = decimal.NewFromInt(2000)
	updated, err := f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{EmpID: "E100", Fields: patch})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, employee.StatusResigned, updated.Status)
	assert.True(t, updated.Salary.Equal(decimal.NewFromInt(2000)))

	_, err = f.svc.UpdateEmployee(ctx, employee.UpdateEmployeeInput{EmpID: "E999", Fields: patch})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	require.NoError(t, f.svc.DeleteEmployee(ctx, employee.DeleteEmployeeInput{EmpID: "E999"}))
	require.NoError(t, f.svc.DeleteEmployee(ctx, employee.DeleteEmployeeInput{EmpID: "E100"}))

	all, err := f.svc.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestEmployeeRepository_SeedIfEmpty(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	inserted, err := f.svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, inserted)

	all, err := f.svc.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "EMP001", all[0].EmpID)
	assert.Equal(t, "EMP005", all[4].EmpID)

	inserted, err = f.svc.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)
}
