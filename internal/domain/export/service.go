package export

import (
	"context"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
)

type ExportService interface {
	Export(ctx context.Context, rt approval.ReportType, req Request) (File, error)
}
