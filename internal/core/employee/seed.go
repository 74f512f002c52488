package employee

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSeeds は空のストレージに投入する初期社員データです。
func DefaultSeeds() []CreateEmployeeInput {
	return []CreateEmployeeInput{
		seed("EMP001", "shubham Dhone", "aarav@acme.com", "+91 98765 00001", "Engineering", "Backend Dev", 850000, "2023-07-18", StatusActive),
		seed("EMP002", "Priya Singh", "priya@acme.com", "+91 98765 00002", "Engineering", "Frontend Dev", 780000, "2024-01-10", StatusActive),
		seed("EMP003", "Rahul Verma", "rahul@acme.com", "+91 98765 00003", "HR", "HR Manager", 650000, "2022-03-05", StatusActive),
		seed("EMP004", "Neha Patil", "neha@acme.com", "+91 98765 00004", "Finance", "Accountant", 540000, "2021-11-22", StatusOnLeave),
		seed("EMP005", "Rohan Mehta", "rohan@acme.com", "+91 98765 00005", "Operations", "Ops Exec", 480000, "2020-06-01", StatusActive),
	}
}

func seed(empID, name, email, phone, department, role string, salary int64, doj string, status Status) CreateEmployeeInput {
	joined, err := time.Parse(DateLayout, doj)
	if err != nil {
		panic(err)
	}
	return CreateEmployeeInput{
		EmpID: empID,
		Fields: Fields{
			Name:          name,
			Email:         email,
			Phone:         phone,
			Department:    department,
			Role:          role,
			Salary:        decimal.NewFromInt(salary),
			DateOfJoining: joined,
			Status:        status,
		},
	}
}

// SeedIfEmpty はストレージが空の場合のみ初期データを投入し、投入件数を返します。
func (s *Service) SeedIfEmpty(ctx context.Context) (int, error) {
	return s.seedIfEmpty(ctx, DefaultSeeds())
}

func (s *Service) seedIfEmpty(ctx context.Context, seeds []CreateEmployeeInput) (int, error) {
	inserted := 0
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		count, err := s.repo.Count(txCtx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, in := range seeds {
			if _, err := s.CreateEmployee(txCtx, in); err != nil {
				return err
			}
			inserted++
		}
		return nil
	}); err != nil {
		return 0, err
	}

	return inserted, nil
}
