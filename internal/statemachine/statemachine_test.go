package statemachine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vecindia/condominio-api/internal/models"
)

func TestPaymentFSM_Transitions(t *testing.T) {
	ctx := context.Background()

	payment := &models.Payment{Status: models.PaymentStatusPending}
	pfsm := NewPaymentFSM(payment)

	assert.True(t, pfsm.Can("approve"))
	assert.NoError(t, pfsm.Approve(ctx))
	assert.Equal(t, models.PaymentStatusApproved, payment.Status)

	// An approved payment can only be reversed, not approved again
	pfsm = NewPaymentFSM(payment)
	assert.Error(t, pfsm.Approve(ctx))
	assert.NoError(t, pfsm.Reverse(ctx))
	assert.Equal(t, models.PaymentStatusReversed, payment.Status)
}

func TestPaymentFSM_RejectedIsTerminal(t *testing.T) {
	ctx := context.Background()

	payment := &models.Payment{Status: models.PaymentStatusPending}
	pfsm := NewPaymentFSM(payment)
	assert.NoError(t, pfsm.Reject(ctx))
	assert.Equal(t, models.PaymentStatusRejected, payment.Status)

	pfsm = NewPaymentFSM(payment)
	assert.Error(t, pfsm.Approve(ctx))
	assert.Error(t, pfsm.Reverse(ctx))
}

func TestChargeFSM_Lifecycle(t *testing.T) {
	ctx := context.Background()

	charge := &models.Charge{Status: models.ChargeStatusPending}
	cfsm := NewChargeFSM(charge)
	assert.NoError(t, cfsm.Expire(ctx))
	assert.Equal(t, models.ChargeStatusOverdue, charge.Status)

	cfsm = NewChargeFSM(charge)
	assert.NoError(t, cfsm.Age(ctx))
	assert.Equal(t, models.ChargeStatusDelinquent, charge.Status)

	// A delinquent charge can still be paid, and a paid one reopened
	cfsm = NewChargeFSM(charge)
	assert.NoError(t, cfsm.Pay(ctx))
	assert.Equal(t, models.ChargeStatusPaid, charge.Status)

	cfsm = NewChargeFSM(charge)
	assert.Error(t, cfsm.Pay(ctx))
	assert.NoError(t, cfsm.Reopen(ctx))
	assert.Equal(t, models.ChargeStatusPending, charge.Status)
}

func TestFineFSM_CondoneAndReopen(t *testing.T) {
	ctx := context.Background()

	fine := &models.Fine{Status: models.FineStatusPending}
	ffsm := NewFineFSM(fine)
	assert.NoError(t, ffsm.Condone(ctx))
	assert.Equal(t, models.FineStatusCondoned, fine.Status)

	// Condoned fines cannot be condoned or paid again
	ffsm = NewFineFSM(fine)
	assert.Error(t, ffsm.Condone(ctx))
	assert.Error(t, ffsm.Pay(ctx))

	// Reversal of a condonation reopens the fine
	assert.NoError(t, ffsm.Reopen(ctx))
	assert.Equal(t, models.FineStatusPending, fine.Status)
}
