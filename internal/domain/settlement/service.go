package settlement

import "context"

type SettlementService interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Create(ctx context.Context, req CreateRequest) (RecordResponse, error)
	Update(ctx context.Context, req UpdateRequest) (RecordResponse, error)
	Delete(ctx context.Context, req DeleteRequest) error
	Swap(ctx context.Context, req SwapRequest) ([]RecordResponse, error)
}
