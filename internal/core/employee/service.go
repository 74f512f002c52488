package employee

import (
	"context"
	"fmt"
	"strings"
)

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は社員に関するユースケースをまとめます。
type Service struct {
	repo Repository
	tx   TransactionManager
}

// UseCase は社員ユースケースの公開インターフェースです。
type UseCase interface {
	ListEmployees(ctx context.Context) ([]*Employee, error)
	GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error)
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error
}

// NewService は Service を生成します。tx が nil の場合はトランザクションを張りません。
func NewService(repo Repository, tx TransactionManager) *Service {
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, tx: tx}
}

// CreateEmployeeInput は社員作成時の入力です。
type CreateEmployeeInput struct {
	EmpID string
	Fields
}

// UpdateEmployeeInput は社員更新時の入力です。Fields の全項目で既存値を上書きします。
type UpdateEmployeeInput struct {
	EmpID string
	Fields
}

// DeleteEmployeeInput は社員削除時の入力です。
type DeleteEmployeeInput struct {
	EmpID string
}

// GetEmployeeInput は社員取得時の入力です。
type GetEmployeeInput struct {
	EmpID string
}

// ListEmployees はすべての社員を保存順に返します。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetEmployee は社員番号で社員を取得します。
func (s *Service) GetEmployee(ctx context.Context, in GetEmployeeInput) (*Employee, error) {
	empID, err := normalizeEmpID(in.EmpID)
	if err != nil {
		return nil, err
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByEmpID(txCtx, empID)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// CreateEmployee は新しい社員を作成します。社員番号が既に存在する場合は ErrEmpIDAlreadyExists を返します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	if verr := ValidateCreate(in); verr != nil {
		return nil, verr
	}

	emp := &Employee{EmpID: strings.TrimSpace(in.EmpID)}
	emp.apply(in.Fields.normalized())

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmpIDNotExists(txCtx, emp.EmpID); err != nil {
			return err
		}

		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateEmployee は既存社員の更新可能項目をすべて上書きします。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	empID, err := normalizeEmpID(in.EmpID)
	if err != nil {
		return nil, err
	}

	if verr := ValidateUpdate(in); verr != nil {
		return nil, verr
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByEmpID(txCtx, empID)
		if err != nil {
			return err
		}

		existing.apply(in.Fields.normalized())

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee は社員番号に一致する社員を削除します。存在しない場合も成功として扱います。
func (s *Service) DeleteEmployee(ctx context.Context, in DeleteEmployeeInput) error {
	empID, err := normalizeEmpID(in.EmpID)
	if err != nil {
		return err
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.DeleteByEmpID(txCtx, empID)
	})
}

func (s *Service) ensureEmpIDNotExists(ctx context.Context, empID string) error {
	exists, err := s.repo.ExistsByEmpID(ctx, empID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s: %w", empID, ErrEmpIDAlreadyExists)
	}
	return nil
}

func normalizeEmpID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalidEmpID
	}
	return trimmed, nil
}
