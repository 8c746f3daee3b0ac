package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/vecindia/condominio-api/internal/models"
)

// FineFSM wraps a fine with its state machine
type FineFSM struct {
	fine *models.Fine
	fsm  *fsm.FSM
}

// NewFineFSM creates a new fine state machine
func NewFineFSM(fine *models.Fine) *FineFSM {
	ffsm := &FineFSM{
		fine: fine,
	}

	ffsm.fsm = fsm.NewFSM(
		fine.Status,
		fsm.Events{
			// pending → paid
			{Name: "pay", Src: []string{models.FineStatusPending}, Dst: models.FineStatusPaid},

			// pending → condoned (forgiven by the administration)
			{Name: "condone", Src: []string{models.FineStatusPending}, Dst: models.FineStatusCondoned},

			// paid/condoned → pending (payment reversed or condonation undone)
			{Name: "reopen", Src: []string{models.FineStatusPaid, models.FineStatusCondoned}, Dst: models.FineStatusPending},
		},
		fsm.Callbacks{},
	)

	return ffsm
}

// Pay transitions a pending fine to paid
func (f *FineFSM) Pay(ctx context.Context) error {
	if err := f.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to pay fine: %w", err)
	}

	f.fine.Status = f.fsm.Current()
	return nil
}

// Condone transitions a pending fine to condoned
func (f *FineFSM) Condone(ctx context.Context) error {
	if !f.fine.MayCondone() {
		return fmt.Errorf("fine cannot be condoned in current state: %s", f.fine.Status)
	}

	if err := f.fsm.Event(ctx, "condone"); err != nil {
		return fmt.Errorf("failed to condone fine: %w", err)
	}

	f.fine.Status = f.fsm.Current()
	return nil
}

// Reopen transitions a settled fine back to pending
func (f *FineFSM) Reopen(ctx context.Context) error {
	if err := f.fsm.Event(ctx, "reopen"); err != nil {
		return fmt.Errorf("failed to reopen fine: %w", err)
	}

	f.fine.Status = f.fsm.Current()
	return nil
}

// Current returns the current state
func (f *FineFSM) Current() string {
	return f.fsm.Current()
}

// Can checks if a transition is possible
func (f *FineFSM) Can(event string) bool {
	return f.fsm.Can(event)
}
