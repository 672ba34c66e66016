package services

import (
	"context"
	"errors"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/models"
	"famwealth/src/repositories"
	"famwealth/src/schemas"
	"famwealth/src/utils"

	"github.com/sirupsen/logrus"
)

type ReconciliationServiceI interface {
	SyncHoldings(ctx context.Context, scope models.SyncScope, records []brokers.VendorRecord, asOf time.Time) (*schemas.SyncResult, error)
}

// ReconciliationService replaces the stored holdings of a sync tuple with a
// freshly fetched set: delete everything, then insert the normalized records.
//
// The two steps are separate statements. A reader between them sees an empty
// tuple, and two concurrent syncs of one tuple race with the last insert
// winning. There is no lock.
type ReconciliationService struct {
	holdingRepo repositories.HoldingRepository
	syncLogRepo repositories.SyncLogRepository
	registry    *brokers.Registry
	now         func() time.Time
}

func NewReconciliationService(
	holdingRepo repositories.HoldingRepository,
	syncLogRepo repositories.SyncLogRepository,
	registry *brokers.Registry,
) *ReconciliationService {
	return &ReconciliationService{
		holdingRepo: holdingRepo,
		syncLogRepo: syncLogRepo,
		registry:    registry,
		now:         time.Now,
	}
}

// SyncHoldings reconciles one tuple. Invalid records are dropped and reported
// in the result. A delete failure returns SyncError{Stage: delete} with the old
// rows intact; an insert failure returns SyncError{Stage: insert} with the
// tuple left empty until the next successful sync.
func (s *ReconciliationService) SyncHoldings(ctx context.Context, scope models.SyncScope, records []brokers.VendorRecord, asOf time.Time) (*schemas.SyncResult, error) {
	scope, err := validateScope(scope)
	if err != nil {
		return nil, err
	}
	adapter, err := s.registry.Get(scope.BrokerPlatform)
	if err != nil {
		return nil, utils.NewValidationError("broker", err.Error())
	}

	logger := utils.LoggerFromContext(ctx).WithFields(logrus.Fields{
		"user_id":     scope.UserID,
		"broker":      scope.BrokerPlatform,
		"member_id":   scope.MemberID,
		"asset_class": scope.AssetClass,
	})

	result := &schemas.SyncResult{Scope: scope, ImportDate: schemas.NewDate(asOf)}
	holdings := make([]models.Holding, 0, len(records))
	for i, record := range records {
		h, err := NormalizeHolding(adapter.Extract(record, scope.AssetClass), scope, asOf)
		if err != nil {
			logger.Warnf("dropping record %d: %v", i, err)
			result.Dropped = append(result.Dropped, schemas.DroppedRecord{Index: i, Reason: err.Error()})
			continue
		}
		holdings = append(holdings, h)
	}

	deleted, err := s.holdingRepo.DeleteByScope(ctx, scope)
	if err != nil {
		syncErr := &utils.SyncError{Stage: utils.SyncStageDelete, Broker: scope.BrokerPlatform, Err: err}
		logger.WithField("stage", syncErr.Stage).Errorf("delete failed, nothing inserted: %v", err)
		s.recordLog(ctx, logger, scope, string(syncErr.Stage), 0, len(result.Dropped), err)
		return nil, syncErr
	}
	result.DeletedCount = deleted

	if err := s.holdingRepo.InsertBatch(ctx, scope.AssetClass, holdings); err != nil {
		syncErr := &utils.SyncError{Stage: utils.SyncStageInsert, Broker: scope.BrokerPlatform, Err: err}
		logger.WithField("stage", syncErr.Stage).Errorf("insert failed after deleting %d rows, tuple is empty: %v", deleted, err)
		s.recordLog(ctx, logger, scope, string(syncErr.Stage), 0, len(result.Dropped), err)
		return nil, syncErr
	}
	result.InsertedCount = len(holdings)

	logger.Infof("synced holdings: deleted %d, inserted %d, dropped %d", deleted, result.InsertedCount, len(result.Dropped))
	s.recordLog(ctx, logger, scope, models.SyncStageCompleted, result.InsertedCount, len(result.Dropped), nil)
	return result, nil
}

func (s *ReconciliationService) recordLog(ctx context.Context, logger *logrus.Entry, scope models.SyncScope, stage string, inserted, dropped int, syncErr error) {
	if s.syncLogRepo == nil {
		return
	}
	entry := &models.SyncLog{
		UserID:         scope.UserID,
		BrokerPlatform: scope.BrokerPlatform,
		MemberID:       scope.MemberID,
		AssetClass:     scope.AssetClass,
		Stage:          stage,
		InsertedCount:  inserted,
		DroppedCount:   dropped,
		SyncedAt:       s.now(),
	}
	if syncErr != nil {
		entry.Error = syncErr.Error()
	}
	// The sync outcome stands even when the log row cannot be written.
	if err := s.syncLogRepo.Create(context.WithoutCancel(ctx), entry); err != nil {
		logger.Errorf("failed to write sync log: %v", err)
	}
}

// validateScope checks the tuple and canonicalizes its asset class.
func validateScope(scope models.SyncScope) (models.SyncScope, error) {
	switch {
	case scope.UserID == "":
		return scope, utils.NewValidationError("user_id", "is required")
	case scope.BrokerPlatform == "":
		return scope, utils.NewValidationError("broker", "is required")
	case scope.MemberID == "":
		return scope, utils.NewValidationError("member_id", "is required")
	}
	class, err := models.ParseAssetClass(string(scope.AssetClass))
	if err != nil {
		return scope, utils.NewValidationError("asset_class", err.Error())
	}
	scope.AssetClass = class
	return scope, nil
}

// FailedStage returns the reconciliation stage err failed at. ok is false for
// errors raised before any stage ran, such as validation errors.
func FailedStage(err error) (stage utils.SyncStage, ok bool) {
	var syncErr *utils.SyncError
	if !errors.As(err, &syncErr) {
		return "", false
	}
	return syncErr.Stage, true
}
