package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"
	"github.com/vecindia/condominio-api/internal/models"
)

// PaymentFSM wraps a payment with its state machine
type PaymentFSM struct {
	payment *models.Payment
	fsm     *fsm.FSM
}

// NewPaymentFSM creates a new payment state machine
func NewPaymentFSM(payment *models.Payment) *PaymentFSM {
	pfsm := &PaymentFSM{
		payment: payment,
	}

	pfsm.fsm = fsm.NewFSM(
		payment.Status,
		fsm.Events{
			// pending → approved / rejected (administration review)
			{Name: "approve", Src: []string{models.PaymentStatusPending}, Dst: models.PaymentStatusApproved},
			{Name: "reject", Src: []string{models.PaymentStatusPending}, Dst: models.PaymentStatusRejected},

			// approved → reversed; rejected is terminal
			{Name: "reverse", Src: []string{models.PaymentStatusApproved}, Dst: models.PaymentStatusReversed},
		},
		fsm.Callbacks{},
	)

	return pfsm
}

// Approve moves a pending payment to approved
func (p *PaymentFSM) Approve(ctx context.Context) error {
	if !p.payment.MayApprove() {
		return fmt.Errorf("payment in state %s cannot be approved", p.payment.Status)
	}
	return p.fire(ctx, "approve")
}

// Reject moves a pending payment to rejected
func (p *PaymentFSM) Reject(ctx context.Context) error {
	if !p.payment.MayReject() {
		return fmt.Errorf("payment in state %s cannot be rejected", p.payment.Status)
	}
	return p.fire(ctx, "reject")
}

// Reverse moves an approved payment to reversed
func (p *PaymentFSM) Reverse(ctx context.Context) error {
	if !p.payment.MayReverse() {
		return fmt.Errorf("payment in state %s cannot be reversed", p.payment.Status)
	}
	return p.fire(ctx, "reverse")
}

func (p *PaymentFSM) fire(ctx context.Context, event string) error {
	if err := p.fsm.Event(ctx, event); err != nil {
		return fmt.Errorf("payment transition %s: %w", event, err)
	}
	p.payment.Status = p.fsm.Current()
	return nil
}

// Current returns the current state
func (p *PaymentFSM) Current() string {
	return p.fsm.Current()
}

// Can checks if a transition is possible
func (p *PaymentFSM) Can(event string) bool {
	return p.fsm.Can(event)
}
