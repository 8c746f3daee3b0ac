package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/vecindia/condominio-api/internal/models"
)

// ChargeFSM wraps a common-expense charge with its state machine
type ChargeFSM struct {
	charge *models.Charge
	fsm    *fsm.FSM
}

// NewChargeFSM creates a new charge state machine
func NewChargeFSM(charge *models.Charge) *ChargeFSM {
	cfsm := &ChargeFSM{
		charge: charge,
	}

	cfsm.fsm = fsm.NewFSM(
		charge.Status,
		fsm.Events{
			// pending → overdue (past due date)
			{Name: "expire", Src: []string{models.ChargeStatusPending}, Dst: models.ChargeStatusOverdue},

			// overdue → delinquent (long past due date)
			{Name: "age", Src: []string{models.ChargeStatusOverdue}, Dst: models.ChargeStatusDelinquent},

			// any open state → paid
			{Name: "pay", Src: []string{models.ChargeStatusPending, models.ChargeStatusOverdue, models.ChargeStatusDelinquent}, Dst: models.ChargeStatusPaid},

			// paid → pending (payment reversed)
			{Name: "reopen", Src: []string{models.ChargeStatusPaid}, Dst: models.ChargeStatusPending},
		},
		fsm.Callbacks{},
	)

	return cfsm
}

// Expire transitions a pending charge to overdue
func (c *ChargeFSM) Expire(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "expire"); err != nil {
		return fmt.Errorf("failed to expire charge: %w", err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Age transitions an overdue charge to delinquent
func (c *ChargeFSM) Age(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "age"); err != nil {
		return fmt.Errorf("failed to age charge: %w", err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Pay transitions an open charge to paid
func (c *ChargeFSM) Pay(ctx context.Context) error {
	if !c.charge.IsOpenDebt() {
		return fmt.Errorf("charge cannot be paid in current state: %s", c.charge.Status)
	}

	if err := c.fsm.Event(ctx, "pay"); err != nil {
		return fmt.Errorf("failed to pay charge: %w", err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Reopen transitions a paid charge back to pending
func (c *ChargeFSM) Reopen(ctx context.Context) error {
	if err := c.fsm.Event(ctx, "reopen"); err != nil {
		return fmt.Errorf("failed to reopen charge: %w", err)
	}

	c.charge.Status = c.fsm.Current()
	return nil
}

// Current returns the current state
func (c *ChargeFSM) Current() string {
	return c.fsm.Current()
}

// Can checks if a transition is possible
func (c *ChargeFSM) Can(event string) bool {
	return c.fsm.Can(event)
}
