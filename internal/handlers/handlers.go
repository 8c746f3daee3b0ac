package handlers

import (
	"github.com/vecindia/condominio-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health       *HealthHandler
	Auth         *AuthHandler
	User         *UserHandler
	Resident     *ResidentHandler
	Condominium  *CondominiumHandler
	Charge       *ChargeHandler
	Fine         *FineHandler
	Payment      *PaymentHandler
	Ledger       *LedgerHandler
	KPI          *KPIHandler
	Audit        *AuditHandler
	Alert        *AlertHandler
	Announcement *AnnouncementHandler
	Reservation  *ReservationHandler
	Job          *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:       NewHealthHandler(),
		Auth:         NewAuthHandler(svcs.Auth),
		User:         NewUserHandler(svcs.User),
		Resident:     NewResidentHandler(svcs.Resident, svcs.Adjustment),
		Condominium:  NewCondominiumHandler(svcs.Condominium),
		Charge:       NewChargeHandler(svcs.Charge, svcs.Adjustment),
		Fine:         NewFineHandler(svcs.Fine, svcs.Adjustment),
		Payment:      NewPaymentHandler(svcs.Payment),
		Ledger:       NewLedgerHandler(svcs.Ledger, svcs.Report),
		KPI:          NewKPIHandler(svcs.KPI, svcs.Export, svcs.Report),
		Audit:        NewAuditHandler(svcs.Audit),
		Alert:        NewAlertHandler(svcs.Alert),
		Announcement: NewAnnouncementHandler(svcs.Announcement),
		Reservation:  NewReservationHandler(svcs.Reservation),
		Job:          NewJobHandler(svcs.Job),
	}
}
