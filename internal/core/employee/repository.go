package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	List(ctx context.Context) ([]*Employee, error)
	FindByEmpID(ctx context.Context, empID string) (*Employee, error)
	ExistsByEmpID(ctx context.Context, empID string) (bool, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	DeleteByEmpID(ctx context.Context, empID string) error
}
