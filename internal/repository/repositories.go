package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	User         UserRepository
	RefreshToken RefreshTokenRepository
	Resident     ResidentRepository
	Condominium  CondominiumRepository
	CommonSpace  CommonSpaceRepository
	Charge       ChargeRepository
	Fine         FineRepository
	Payment      PaymentRepository
	Audit        AuditRepository
	Alert        AlertRepository
	Announcement AnnouncementRepository
	Reservation  ReservationRepository
	KPI          KPIRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		RefreshToken: NewRefreshTokenRepository(db),
		Resident:     NewResidentRepository(db),
		Condominium:  NewCondominiumRepository(db),
		CommonSpace:  NewCommonSpaceRepository(db),
		Charge:       NewChargeRepository(db),
		Fine:         NewFineRepository(db),
		Payment:      NewPaymentRepository(db),
		Audit:        NewAuditRepository(db),
		Alert:        NewAlertRepository(db),
		Announcement: NewAnnouncementRepository(db),
		Reservation:  NewReservationRepository(db),
		KPI:          NewKPIRepository(db),
	}
}
