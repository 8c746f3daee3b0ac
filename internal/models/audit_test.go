package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseAdjustmentMeta(t *testing.T) {
	chargeID := uint(7)
	meta := AdjustmentMeta{
		ObjectType:     AuditObjectCharge,
		ChargeID:       &chargeID,
		PreviousAmount: 48000,
		NewAmount:      0,
		PreviousStatus: ChargeStatusOverdue,
		IsCondonation:  true,
	}

	encoded, err := meta.Encode()
	assert.NoError(t, err)

	decoded, ok := ParseAdjustmentMeta(encoded)
	assert.True(t, ok)
	assert.Equal(t, meta, decoded)
	assert.True(t, decoded.TargetsCharge(7))
	assert.False(t, decoded.TargetsCharge(8))
	assert.False(t, decoded.TargetsFine(7))
	assert.False(t, decoded.IsReversal())
}

func TestParseAdjustmentMeta_RejectsUnrecognizedPayloads(t *testing.T) {
	_, ok := ParseAdjustmentMeta("")
	assert.False(t, ok)

	_, ok = ParseAdjustmentMeta("not json")
	assert.False(t, ok)

	// Valid JSON but not an adjustment payload
	_, ok = ParseAdjustmentMeta(`{"ip": "10.0.0.1", "agente": "Mozilla"}`)
	assert.False(t, ok)

	_, ok = ParseAdjustmentMeta(`{"tipo_objeto": "RESERVA"}`)
	assert.False(t, ok)

	// A type tag without its matching target id is not an adjustment
	_, ok = ParseAdjustmentMeta(`{"tipo_objeto": "GASTO", "monto_anterior": 48000, "monto_nuevo": 0}`)
	assert.False(t, ok)

	_, ok = ParseAdjustmentMeta(`{"tipo_objeto": "MULTA", "gasto_id": 7}`)
	assert.False(t, ok)
}

func TestObservationList_ValueAndScan(t *testing.T) {
	list := ObservationList{
		{Type: "RESERVA", Description: "Arriendo quincho", Amount: 25000, Date: "2026-03-05"},
		{Type: "OTRO", Description: "Devolución", Amount: -5000},
	}

	value, err := list.Value()
	assert.NoError(t, err)

	var scanned ObservationList
	assert.NoError(t, scanned.Scan(value))
	assert.Equal(t, list, scanned)

	var empty ObservationList
	assert.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}

func TestChargeAgeDays(t *testing.T) {
	charge := &Charge{
		DueDate: date(2026, 3, 10),
	}
	assert.Equal(t, 21, charge.AgeDays(date(2026, 3, 31)))
	assert.Equal(t, -5, charge.AgeDays(date(2026, 3, 5)))

	// Without a due date the issue date is the reference
	charge = &Charge{IssueDate: date(2026, 3, 1)}
	assert.Equal(t, 9, charge.AgeDays(date(2026, 3, 10)))
}
