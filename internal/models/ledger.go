package models

import "time"

// Ledger entry direction constants
const (
	DirectionCharge = "CARGO"
	DirectionCredit = "ABONO"
)

// Ledger entry category constants
const (
	CategoryBaseCharge  = "GASTO_BASE"
	CategoryReservation = "RESERVA"
	CategoryFine        = "MULTA"
	CategoryPayment     = "PAGO"
	CategoryOther       = "OTRO"
)

// LedgerEntry is a synthesized movement in a resident's account statement.
// Entries are not persisted; they are derived from charges, their
// observations, standalone fines and approved payments.
type LedgerEntry struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"fecha"`
	Description string    `json:"descripcion"`
	Direction   string    `json:"direccion"`
	Category    string    `json:"categoria"`
	Amount      float64   `json:"monto"`
	State       string    `json:"estado,omitempty"`
}

// Signed returns the entry's contribution to the balance: positive for
// charges, negative for credits.
func (e LedgerEntry) Signed() float64 {
	if e.Direction == DirectionCredit {
		return -e.Amount
	}
	return e.Amount
}

// AgingBuckets partitions a resident's delinquent debt by age in days
// past the reference date.
type AgingBuckets struct {
	UpTo30Days float64 `json:"hasta_30_dias"`
	UpTo60Days float64 `json:"hasta_60_dias"`
	Over60Days float64 `json:"mas_60_dias"`
}

// Total returns the sum of all buckets
func (b AgingBuckets) Total() float64 {
	return b.UpTo30Days + b.UpTo60Days + b.Over60Days
}

// AccountStatement is a resident's full financial picture: the synthesized
// ledger, the derived balance and the aging of any open debt. SectionErrors
// carries per-source failure messages when one of the underlying queries
// failed; the remaining sections are still populated.
type AccountStatement struct {
	ResidentID    uint          `json:"residente_id"`
	Entries       []LedgerEntry `json:"movimientos"`
	Balance       float64       `json:"saldo"`
	TotalCharges  float64       `json:"total_cargos"`
	TotalCredits  float64       `json:"total_abonos"`
	Aging         AgingBuckets  `json:"antiguedad_deuda"`
	SectionErrors []string      `json:"errores_parciales,omitempty"`
	GeneratedAt   time.Time     `json:"generado_en"`
}

// DelinquencyRow is one resident's line in the delinquency report
type DelinquencyRow struct {
	ResidentID   uint    `json:"residente_id"`
	ResidentName string  `json:"residente"`
	Unit         string  `json:"vivienda"`
	Email        string  `json:"email"`
	OpenCharges  int     `json:"gastos_impagos"`
	OpenFines    int     `json:"multas_impagas"`
	TotalDebt    float64 `json:"deuda_total"`
	OldestDays   int     `json:"dias_mas_antiguo"`
}
