package controllers

import (
	"famwealth/src/repositories"
	"famwealth/src/services"
)

// IController is everything the API handlers call. Every method is scoped to
// the authenticated user passed in as userID.
type IController interface {
	FamilyControllerI
	RemindersControllerI
	SyncControllerI
	BrokersControllerI
	DashboardControllerI
	ReportsControllerI
}

type Controller struct {
	Family    services.FamilyServiceI
	Reminders services.ReminderServiceI
	Engine    services.ReconciliationServiceI
	Brokers   services.BrokerSyncServiceI
	Dashboard services.DashboardServiceI
	Export    services.ExportServiceI
	SyncLogs  repositories.SyncLogRepository
}

func NewController(
	family services.FamilyServiceI,
	reminders services.ReminderServiceI,
	engine services.ReconciliationServiceI,
	brokers services.BrokerSyncServiceI,
	dashboard services.DashboardServiceI,
	export services.ExportServiceI,
	syncLogs repositories.SyncLogRepository,
) *Controller {
	return &Controller{
		Family:    family,
		Reminders: reminders,
		Engine:    engine,
		Brokers:   brokers,
		Dashboard: dashboard,
		Export:    export,
		SyncLogs:  syncLogs,
	}
}
