package cek

import (
	"testing"

	gomock "go.uber.org/mock/gomock"

	"github.com/uplc-eval/uplc/go/uplc"
	"github.com/uplc-eval/uplc/go/uplc/budgetmock"
	"github.com/uplc-eval/uplc/go/uplc/cost"
	"github.com/uplc-eval/uplc/go/uplc/tracelog"
)

// TestChargesStartUpBeforeStepCharge exercises §4.6's ordering requirement
// directly, rather than inferring it from the end result: the startup
// charge must be spent before any per-step charge, on every run.
func TestChargesStartUpBeforeStepCharge(t *testing.T) {
	ctrl := gomock.NewController(t)
	budget := budgetmock.NewMockBudget(ctrl)

	params := cost.DefaultMachineParameters()
	gomock.InOrder(
		budget.EXPECT().Spend(uplc.StartUpSpend(), params.StartUp.CPU, params.StartUp.Mem).Return(nil),
		budget.EXPECT().Spend(uplc.StepSpend(uplc.StepConst), gomock.Any(), gomock.Any()).Return(nil),
	)

	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	v, err := interp.Run(uplc.Const{Value: uplc.NewInteger(9)}, budget, tracelog.NullLogger{}, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Constant.Integer.Int64() != 9 {
		t.Fatalf("got %v, want 9", v)
	}
}

// TestOutOfBudgetStopsBeforeNextCharge confirms a Spend failure on the
// startup charge short-circuits the run: no further Spend call is made.
func TestOutOfBudgetStopsBeforeNextCharge(t *testing.T) {
	ctrl := gomock.NewController(t)
	budget := budgetmock.NewMockBudget(ctrl)

	params := cost.DefaultMachineParameters()
	budget.EXPECT().Spend(uplc.StartUpSpend(), params.StartUp.CPU, params.StartUp.Mem).Return(uplc.ErrOutOfBudget)

	interp, err := NewInterpreter(Config{})
	if err != nil {
		t.Fatalf("NewInterpreter: %v", err)
	}
	_, err = interp.Run(uplc.Const{Value: uplc.NewInteger(9)}, budget, tracelog.NullLogger{}, params)
	if err != uplc.ErrOutOfBudget {
		t.Fatalf("got %v, want ErrOutOfBudget", err)
	}
}
