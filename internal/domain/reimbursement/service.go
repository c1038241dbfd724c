package reimbursement

import "context"

type ReimbursementService interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Create(ctx context.Context, req CreateRequest) (ListResponse, error)
	Update(ctx context.Context, req UpdateRequest) (ListResponse, error)
	Delete(ctx context.Context, req DeleteRequest) (ListResponse, error)
}
