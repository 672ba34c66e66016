package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/config"
	"famwealth/src/models"
	"famwealth/src/schemas"
	"famwealth/src/utils"
	redis_utils "famwealth/src/utils/redis"
)

// EventPublisher delivers events to connected clients.
type EventPublisher interface {
	Publish(ctx context.Context, event schemas.Event) error
}

// CredentialSource supplies static broker credentials such as API keys.
type CredentialSource interface {
	Get(broker, key string) string
}

type BrokerSyncServiceI interface {
	LoginURL(broker string) (string, error)
	CreateSession(ctx context.Context, userID, broker string, req schemas.BrokerSessionRequest) (*brokers.Session, error)
	SyncBroker(ctx context.Context, userID, broker string, req schemas.BrokerSyncRequest) (*schemas.BrokerSyncResponse, error)
	SyncAll(ctx context.Context, userID string) ([]*schemas.BrokerSyncResponse, error)
}

// BrokerSyncService logs in to brokers, fetches their holdings and hands each
// mapped (member, asset class) slice to the reconciliation engine.
type BrokerSyncService struct {
	registry   *brokers.Registry
	sessions   SessionStore
	engine     ReconciliationServiceI
	mappings   []models.BrokerMapping
	sessionTTL time.Duration
	secrets    CredentialSource
	events     EventPublisher
	now        func() time.Time
}

func NewBrokerSyncService(
	registry *brokers.Registry,
	sessions SessionStore,
	engine ReconciliationServiceI,
	mappings []models.BrokerMapping,
	sessionTTL time.Duration,
	secrets CredentialSource,
	events EventPublisher,
) *BrokerSyncService {
	return &BrokerSyncService{
		registry:   registry,
		sessions:   sessions,
		engine:     engine,
		mappings:   mappings,
		sessionTTL: sessionTTL,
		secrets:    secrets,
		events:     events,
		now:        time.Now,
	}
}

// MappingsFromConfig validates the configured broker mappings.
func MappingsFromConfig(cfg []config.BrokerMappingConfig) ([]models.BrokerMapping, error) {
	mappings := make([]models.BrokerMapping, 0, len(cfg))
	for i, m := range cfg {
		class, err := models.ParseAssetClass(m.AssetClass)
		if err != nil {
			return nil, fmt.Errorf("brokers.mappings[%d]: %w", i, err)
		}
		if m.Broker == "" || m.MemberID == "" {
			return nil, fmt.Errorf("brokers.mappings[%d]: broker and memberId are required", i)
		}
		mappings = append(mappings, models.BrokerMapping{Broker: m.Broker, MemberID: m.MemberID, AssetClass: class})
	}
	return mappings, nil
}

func (s *BrokerSyncService) LoginURL(broker string) (string, error) {
	adapter, err := s.registry.Get(broker)
	if err != nil {
		return "", utils.NotFound(err.Error())
	}
	provider, ok := adapter.(brokers.LoginURLProvider)
	if !ok {
		return "", utils.BadRequest(fmt.Sprintf("%s has no redirect login", broker))
	}
	return provider.LoginURL(), nil
}

// CreateSession authenticates with the broker and stores the session.
func (s *BrokerSyncService) CreateSession(ctx context.Context, userID, broker string, req schemas.BrokerSessionRequest) (*brokers.Session, error) {
	adapter, err := s.registry.Get(broker)
	if err != nil {
		return nil, utils.NotFound(err.Error())
	}

	creds := brokers.Credentials{
		UserID:          userID,
		RequestToken:    req.RequestToken,
		Username:        req.Username,
		Password:        req.Password,
		TwoFactorAnswer: req.TwoFactorAnswer,
	}
	if s.secrets != nil {
		creds.APIKey = s.secrets.Get(broker, "api_key")
		creds.APISecret = s.secrets.Get(broker, "api_secret")
		creds.ClientSecret = s.secrets.Get(broker, "client_secret")
	}

	session, err := adapter.Authenticate(ctx, creds)
	if err != nil {
		return nil, err
	}
	session.UserID = userID
	if err := s.sessions.Save(ctx, session, s.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to store %s session: %w", broker, err)
	}
	utils.LoggerFromContext(ctx).WithField("broker", broker).Info("broker session created")
	return session, nil
}

// SyncBroker fetches the broker's holdings once and reconciles every mapped
// tuple that matches req. One tuple failing does not stop the others. The
// returned error is set only when nothing could be synced.
func (s *BrokerSyncService) SyncBroker(ctx context.Context, userID, broker string, req schemas.BrokerSyncRequest) (*schemas.BrokerSyncResponse, error) {
	adapter, err := s.registry.Get(broker)
	if err != nil {
		return nil, utils.NotFound(err.Error())
	}
	mappings, err := s.matchingMappings(broker, req)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Load(ctx, userID, broker)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, &utils.AuthenticationError{Broker: broker, Err: errors.New("no active session, log in again")}
		}
		return nil, err
	}

	logger := utils.LoggerFromContext(ctx).WithField("broker", broker)
	records, err := adapter.FetchHoldings(ctx, session)
	if err != nil {
		var authErr *utils.AuthenticationError
		if errors.As(err, &authErr) {
			if delErr := s.sessions.Delete(ctx, userID, broker); delErr != nil {
				logger.Warnf("failed to drop rejected session: %v", delErr)
			}
		}
		return nil, err
	}

	byClass := make(map[models.AssetClass][]brokers.VendorRecord)
	for _, record := range records {
		class := adapter.Classify(record)
		byClass[class] = append(byClass[class], record)
	}

	resp := &schemas.BrokerSyncResponse{Broker: broker, Fetched: len(records)}
	asOf := s.now()
	var firstErr error
	for _, m := range mappings {
		scope := models.SyncScope{UserID: userID, BrokerPlatform: broker, MemberID: m.MemberID, AssetClass: m.AssetClass}
		result, err := s.engine.SyncHoldings(ctx, scope, byClass[m.AssetClass], asOf)
		if err != nil {
			tupleErr := schemas.TupleError{Scope: scope, Message: err.Error()}
			if stage, ok := FailedStage(err); ok {
				tupleErr.Stage = string(stage)
				if stage == utils.SyncStageInsert {
					logger.WithField("member_id", m.MemberID).Warnf("%s holdings left empty until the next sync", m.AssetClass)
				}
			}
			resp.Errors = append(resp.Errors, tupleErr)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		resp.Results = append(resp.Results, *result)
	}

	s.publish(ctx, userID, resp)

	if len(resp.Results) == 0 && firstErr != nil {
		return resp, firstErr
	}
	return resp, nil
}

// SyncAll syncs every mapped broker that has a live session for the user.
func (s *BrokerSyncService) SyncAll(ctx context.Context, userID string) ([]*schemas.BrokerSyncResponse, error) {
	logger := utils.LoggerFromContext(ctx).WithField("user_id", userID)

	var responses []*schemas.BrokerSyncResponse
	var errs []error
	for _, broker := range s.mappedBrokers() {
		resp, err := s.SyncBroker(ctx, userID, broker, schemas.BrokerSyncRequest{})
		if err != nil {
			var authErr *utils.AuthenticationError
			if errors.As(err, &authErr) {
				logger.WithField("broker", broker).Infof("skipping scheduled sync: %v", err)
				continue
			}
			logger.WithField("broker", broker).Errorf("scheduled sync failed: %v", err)
			errs = append(errs, err)
		}
		if resp != nil {
			responses = append(responses, resp)
		}
	}
	return responses, errors.Join(errs...)
}

func (s *BrokerSyncService) matchingMappings(broker string, req schemas.BrokerSyncRequest) ([]models.BrokerMapping, error) {
	var class models.AssetClass
	if req.AssetClass != "" {
		parsed, err := models.ParseAssetClass(req.AssetClass)
		if err != nil {
			return nil, utils.NewValidationError("asset_class", err.Error())
		}
		class = parsed
	}

	var matched []models.BrokerMapping
	for _, m := range s.mappings {
		if m.Broker != broker {
			continue
		}
		if req.MemberID != "" && m.MemberID != req.MemberID {
			continue
		}
		if class != "" && m.AssetClass != class {
			continue
		}
		matched = append(matched, m)
	}
	if len(matched) == 0 {
		return nil, utils.NewValidationError("broker", fmt.Sprintf("no member mapping configured for %s", broker))
	}
	return matched, nil
}

func (s *BrokerSyncService) mappedBrokers() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range s.mappings {
		if !seen[m.Broker] {
			seen[m.Broker] = true
			names = append(names, m.Broker)
		}
	}
	return names
}

func (s *BrokerSyncService) publish(ctx context.Context, userID string, resp *schemas.BrokerSyncResponse) {
	if s.events == nil {
		return
	}
	event := schemas.Event{
		ID:         redis_utils.GenerateUUID(userID, resp.Broker, s.now().Format(time.RFC3339Nano)),
		Type:       schemas.EventSyncCompleted,
		UserID:     userID,
		OccurredAt: s.now(),
		Payload:    resp,
	}
	if err := s.events.Publish(ctx, event); err != nil {
		utils.LoggerFromContext(ctx).WithField("broker", resp.Broker).Warnf("failed to publish sync event: %v", err)
	}
}
