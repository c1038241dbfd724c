package settlement

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/settlement"
	"github.com/cmlabs-hris/kintai-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/workflow"
	approvalsvc "github.com/cmlabs-hris/kintai-backend-go/internal/service/approval"
	"github.com/cmlabs-hris/kintai-backend-go/internal/service/servicetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	lines     *servicetest.SettlementRepo
	approvals *servicetest.ApprovalRepo
	svc       *SettlementServiceImpl
	ctx       context.Context
}

func newFixture() *fixture {
	lines := servicetest.NewSettlementRepo()
	approvals := servicetest.NewApprovalRepo()
	svc := NewSettlementService(&servicetest.TxRunner{}, lines, approvals, approvalsvc.NewGate(approvals)).(*SettlementServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, 10, 20, 0, 0, 0, 0, time.UTC) }
	return &fixture{
		lines:     lines,
		approvals: approvals,
		svc:       svc,
		ctx:       servicetest.AsActor(context.Background(), "E001", user.RoleEmployee),
	}
}

func line(date string, cost int64) settlement.CreateRequest {
	return settlement.CreateRequest{
		EmployeeID:     "E001",
		Date:           date,
		Form:           string(settlement.FormTrip),
		Method:         string(settlement.MethodRoundTrip),
		Departure:      "Shinjuku",
		Arrival:        "Yokohama",
		Transportation: "JR",
		Cost:           cost,
	}
}

func (f *fixture) create(t *testing.T, date string, cost int64) settlement.RecordResponse {
	t.Helper()
	r, err := f.svc.Create(f.ctx, line(date, cost))
	require.NoError(t, err)
	return r
}

func (f *fixture) list(t *testing.T) settlement.ListResponse {
	t.Helper()
	resp, err := f.svc.List(f.ctx, settlement.ListRequest{EmployeeID: "E001", YearMonth: "202410"})
	require.NoError(t, err)
	return resp
}

func displayNos(resp settlement.ListResponse) map[int64]int {
	out := make(map[int64]int, len(resp.Records))
	for _, r := range resp.Records {
		out[r.TNo] = r.DisplayNo
	}
	return out
}

func TestCreate_AppendsWithinDay(t *testing.T) {
	f := newFixture()
	a := f.create(t, "2024-10-01", 500)
	b := f.create(t, "2024-10-01", 300)
	c := f.create(t, "2024-10-02", 200)

	assert.Equal(t, 1, a.DisplayNo)
	assert.Equal(t, 2, b.DisplayNo)
	assert.Equal(t, 1, c.DisplayNo)
	assert.Equal(t, int64(1000), a.Total)

	resp := f.list(t)
	assert.Equal(t, "input", resp.StatusKey)
	assert.Equal(t, int64(2000), resp.Total)
	assert.Equal(t, []string{"edit", "clear", "submit"}, resp.Actions)
}

func TestDelete_RenumbersDay(t *testing.T) {
	f := newFixture()
	a := f.create(t, "2024-10-01", 100)
	b := f.create(t, "2024-10-01", 100)
	c := f.create(t, "2024-10-01", 100)

	require.NoError(t, f.svc.Delete(f.ctx, settlement.DeleteRequest{TNo: b.TNo, EmployeeID: "E001"}))

	nos := displayNos(f.list(t))
	assert.Equal(t, map[int64]int{a.TNo: 1, c.TNo: 2}, nos)
}

func TestDelete_LastLineClearsStatus(t *testing.T) {
	f := newFixture()
	a := f.create(t, "2024-10-01", 100)

	require.NoError(t, f.svc.Delete(f.ctx, settlement.DeleteRequest{TNo: a.TNo, EmployeeID: "E001"}))
	assert.Equal(t, approval.StatusNoInput, f.approvals.Status("E001", "202410", approval.ReportSettlement))

	err := f.svc.Delete(f.ctx, settlement.DeleteRequest{TNo: a.TNo, EmployeeID: "E001"})
	assert.ErrorIs(t, err, settlement.ErrSettlementNotFound)
}

func TestSwap(t *testing.T) {
	f := newFixture()
	a := f.create(t, "2024-10-01", 100)
	b := f.create(t, "2024-10-01", 200)
	c := f.create(t, "2024-10-01", 300)
	d := f.create(t, "2024-10-02", 300)

	out, err := f.svc.Swap(f.ctx, settlement.SwapRequest{EmployeeID: "E001", TNoA: a.TNo, TNoB: b.TNo})
	require.NoError(t, err)
	assert.Equal(t, 2, out[0].DisplayNo)
	assert.Equal(t, 1, out[1].DisplayNo)

	_, err = f.svc.Swap(f.ctx, settlement.SwapRequest{EmployeeID: "E001", TNoA: b.TNo, TNoB: c.TNo})
	assert.ErrorIs(t, err, settlement.ErrSwapNotAdjacent)

	_, err = f.svc.Swap(f.ctx, settlement.SwapRequest{EmployeeID: "E001", TNoA: c.TNo, TNoB: d.TNo})
	assert.ErrorIs(t, err, settlement.ErrSwapDifferentDay)

	nos := displayNos(f.list(t))
	assert.Equal(t, map[int64]int{a.TNo: 2, b.TNo: 1, c.TNo: 3, d.TNo: 1}, nos)
}

func TestUpdate_MoveToAnotherDay(t *testing.T) {
	f := newFixture()
	a := f.create(t, "2024-10-01", 100)
	b := f.create(t, "2024-10-01", 100)
	c := f.create(t, "2024-10-02", 100)

	req := settlement.UpdateRequest{
		TNo: a.TNo, EmployeeID: "E001", Date: "2024-10-02",
		Form: string(settlement.FormCommuter), Method: string(settlement.MethodOneWay),
		Departure: "Shibuya", Arrival: "Ebisu", Transportation: "Metro", Cost: 180,
	}
	updated, err := f.svc.Update(f.ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.DisplayNo)
	assert.Equal(t, int64(180), updated.Total)

	nos := displayNos(f.list(t))
	assert.Equal(t, map[int64]int{a.TNo: 2, b.TNo: 1, c.TNo: 1}, nos)

	req.Date = "2024-11-01"
	_, err = f.svc.Update(f.ctx, req)
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestFrozenAndForeignLines(t *testing.T) {
	f := newFixture()
	a := f.create(t, "2024-10-01", 100)

	other := servicetest.AsActor(context.Background(), "E002", user.RoleEmployee)
	req := settlement.DeleteRequest{TNo: a.TNo, EmployeeID: "E002"}
	err := f.svc.Delete(other, req)
	assert.ErrorIs(t, err, settlement.ErrSettlementNotFound)

	_, err = f.svc.Create(other, line("2024-10-01", 100))
	assert.ErrorIs(t, err, user.ErrNotOwnRecord)

	rec, _ := f.approvals.Get(context.Background(), "E001", "202410")
	rec.SettlementStatus = approval.StatusApproved
	f.approvals.Seed(rec)

	_, err = f.svc.Create(f.ctx, line("2024-10-03", 100))
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)
	assert.Len(t, f.lines.Records, 1)
}
