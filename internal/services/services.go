package services

import (
	"github.com/vecindia/condominio-api/internal/config"
	"github.com/vecindia/condominio-api/internal/jobs"
	"github.com/vecindia/condominio-api/internal/repository"
)

// Services holds all service instances
type Services struct {
	Auth         *AuthService
	User         *UserService
	Resident     *ResidentService
	Condominium  *CondominiumService
	Charge       *ChargeService
	Fine         *FineService
	Payment      *PaymentService
	Ledger       *LedgerService
	Adjustment   *AdjustmentService
	KPI          *KPIService
	Export       *ExportService
	Report       *ReportService
	Audit        *AuditService
	Alert        *AlertService
	Announcement *AnnouncementService
	Reservation  *ReservationService
	Job          *JobService
}

// NewServices creates all service instances
func NewServices(repos *repository.Repositories, worker *jobs.Worker, cfg *config.Config) *Services {
	auditSvc := NewAuditService(repos.Audit)
	alertSvc := NewAlertService(repos.Alert, repos.User, repos.Resident)
	ledgerSvc := NewLedgerService(repos.Charge, repos.Fine, repos.Payment, repos.Resident)
	kpiSvc := NewKPIService(repos.KPI, repos.Resident, repos.Charge, repos.Fine, repos.Payment, cfg)

	adjustmentSvc := NewAdjustmentService(repos.Charge, repos.Fine, repos.Audit, auditSvc, alertSvc)
	paymentSvc := NewPaymentService(repos.Payment, repos.Charge, repos.Fine, repos.Resident, auditSvc, alertSvc)

	// Financial mutations stale the cached dashboard.
	adjustmentSvc.kpi = kpiSvc
	paymentSvc.kpi = kpiSvc

	return &Services{
		Auth:         NewAuthService(repos.User, repos.RefreshToken, cfg),
		User:         NewUserService(repos.User, auditSvc),
		Resident:     NewResidentService(repos.Resident, repos.User, auditSvc),
		Condominium:  NewCondominiumService(repos.Condominium, repos.CommonSpace),
		Charge:       NewChargeService(repos.Charge, repos.Resident, auditSvc, alertSvc, cfg),
		Fine:         NewFineService(repos.Fine, repos.Charge, repos.Resident, auditSvc, alertSvc, cfg),
		Payment:      paymentSvc,
		Ledger:       ledgerSvc,
		Adjustment:   adjustmentSvc,
		KPI:          kpiSvc,
		Export:       NewExportService(kpiSvc),
		Report:       NewReportService(ledgerSvc, kpiSvc, repos.Resident),
		Audit:        auditSvc,
		Alert:        alertSvc,
		Announcement: NewAnnouncementService(repos.Announcement, repos.Resident, alertSvc, worker),
		Reservation:  NewReservationService(repos.Reservation, repos.CommonSpace, repos.Resident, alertSvc),
		Job:          NewJobService(worker),
	}
}
