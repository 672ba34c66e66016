package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"famwealth/src/clients/brokers"
	"famwealth/src/models"
	"famwealth/src/repositories"
	"famwealth/src/schemas"
)

type memHoldingRepo struct {
	mu        sync.Mutex
	rows      []models.Holding
	seq       int
	deleteErr error
	insertErr error
}

func (r *memHoldingRepo) DeleteByScope(_ context.Context, scope models.SyncScope) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var kept []models.Holding
	var deleted int64
	for _, h := range r.rows {
		if h.Scope() == scope {
			deleted++
			continue
		}
		kept = append(kept, h)
	}
	r.rows = kept
	return deleted, nil
}

func (r *memHoldingRepo) InsertBatch(_ context.Context, class models.AssetClass, holdings []models.Holding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.insertErr != nil {
		return r.insertErr
	}
	for _, h := range holdings {
		r.seq++
		h.ID = fmt.Sprintf("h-%d", r.seq)
		h.AssetClass = class
		r.rows = append(r.rows, h)
	}
	return nil
}

func (r *memHoldingRepo) List(_ context.Context, f repositories.HoldingFilter) ([]models.Holding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Holding
	for _, h := range r.rows {
		if h.UserID != f.UserID ||
			(f.MemberID != "" && h.MemberID != f.MemberID) ||
			(f.BrokerPlatform != "" && h.BrokerPlatform != f.BrokerPlatform) ||
			(f.AssetClass != "" && h.AssetClass != f.AssetClass) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

func (r *memHoldingRepo) DeleteByMember(_ context.Context, userID, memberID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []models.Holding
	var n int64
	for _, h := range r.rows {
		if h.UserID == userID && h.MemberID == memberID {
			n++
			continue
		}
		kept = append(kept, h)
	}
	r.rows = kept
	return n, nil
}

func (r *memHoldingRepo) scope(scope models.SyncScope) []models.Holding {
	rows, _ := r.List(context.Background(), repositories.HoldingFilter{
		UserID: scope.UserID, MemberID: scope.MemberID, BrokerPlatform: scope.BrokerPlatform, AssetClass: scope.AssetClass,
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Symbol < rows[j].Symbol })
	return rows
}

type memSyncLogRepo struct {
	mu   sync.Mutex
	logs []models.SyncLog
}

func (r *memSyncLogRepo) Create(_ context.Context, l *models.SyncLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l.ID = len(r.logs) + 1
	r.logs = append(r.logs, *l)
	return nil
}

func (r *memSyncLogRepo) ListRecent(_ context.Context, userID string, limit int) ([]models.SyncLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.SyncLog
	for i := len(r.logs) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if r.logs[i].UserID == userID {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

func (r *memSyncLogRepo) GetLastSyncDate(_ context.Context, scope models.SyncScope) (*time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var last *time.Time
	for _, l := range r.logs {
		if l.Stage != models.SyncStageCompleted || l.UserID != scope.UserID || l.BrokerPlatform != scope.BrokerPlatform ||
			l.MemberID != scope.MemberID || l.AssetClass != scope.AssetClass {
			continue
		}
		if last == nil || l.SyncedAt.After(*last) {
			at := l.SyncedAt
			last = &at
		}
	}
	return last, nil
}

// memStore backs the family repositories with plain maps keyed by id.
type memStore struct {
	mu          sync.Mutex
	seq         int
	members     map[string]models.FamilyMember
	investments map[string]models.Investment
	liabilities map[string]models.Liability
	accounts    map[string]models.Account
	reminders   map[string]models.Reminder
	replaceErr  error
}

func newMemStore() *memStore {
	return &memStore{
		members:     map[string]models.FamilyMember{},
		investments: map[string]models.Investment{},
		liabilities: map[string]models.Liability{},
		accounts:    map[string]models.Account{},
		reminders:   map[string]models.Reminder{},
	}
}

func (s *memStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

type memMemberRepo struct{ *memStore }

func (r memMemberRepo) List(_ context.Context, userID string) ([]models.FamilyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.FamilyMember
	for _, m := range r.members {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memMemberRepo) Get(_ context.Context, userID, id string) (*models.FamilyMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok || m.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &m, nil
}

func (r memMemberRepo) Create(_ context.Context, m *models.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = r.nextID("member")
	}
	r.members[m.ID] = *m
	return nil
}

func (r memMemberRepo) Update(_ context.Context, m *models.FamilyMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[m.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.members[m.ID] = *m
	return nil
}

func (r memMemberRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.members[id]; !ok || m.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.members, id)
	return nil
}

type memInvestmentRepo struct{ *memStore }

func (r memInvestmentRepo) List(_ context.Context, userID string) ([]models.Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Investment
	for _, i := range r.investments {
		if i.UserID == userID {
			out = append(out, i)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	return out, nil
}

func (r memInvestmentRepo) Get(_ context.Context, userID, id string) (*models.Investment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i, ok := r.investments[id]
	if !ok || i.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &i, nil
}

func (r memInvestmentRepo) Create(_ context.Context, i *models.Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i.ID == "" {
		i.ID = r.nextID("inv")
	}
	r.investments[i.ID] = *i
	return nil
}

func (r memInvestmentRepo) Update(_ context.Context, i *models.Investment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.investments[i.ID] = *i
	return nil
}

func (r memInvestmentRepo) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i, ok := r.investments[id]; !ok || i.UserID != userID {
		return repositories.ErrNotFound
	}
	delete(r.investments, id)
	return nil
}

func (r memInvestmentRepo) DeleteByMember(_ context.Context, userID, memberID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, i := range r.investments {
		if i.UserID == userID && i.MemberID == memberID {
			delete(r.investments, id)
			n++
		}
	}
	return n, nil
}

type memLiabilityRepo struct{ *memStore }

func (r memLiabilityRepo) List(_ context.Context, userID string) ([]models.Liability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Liability
	for _, l := range r.liabilities {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r memLiabilityRepo) Create(_ context.Context, l *models.Liability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = r.nextID("liab")
	}
	r.liabilities[l.ID] = *l
	return nil
}

func (r memLiabilityRepo) Update(_ context.Context, l *models.Liability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.liabilities[l.ID] = *l
	return nil
}

func (r memLiabilityRepo) Delete(_ context.Context, _, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.liabilities, id)
	return nil
}

func (r memLiabilityRepo) DeleteByMember(_ context.Context, userID, memberID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, l := range r.liabilities {
		if l.UserID == userID && l.MemberID == memberID {
			delete(r.liabilities, id)
			n++
		}
	}
	return n, nil
}

type memAccountRepo struct{ *memStore }

func (r memAccountRepo) List(_ context.Context, userID string) ([]models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Account
	for _, a := range r.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r memAccountRepo) Create(_ context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID == "" {
		a.ID = r.nextID("acct")
	}
	r.accounts[a.ID] = *a
	return nil
}

func (r memAccountRepo) Update(_ context.Context, a *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts[a.ID] = *a
	return nil
}

func (r memAccountRepo) Delete(_ context.Context, _, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, id)
	return nil
}

func (r memAccountRepo) DeleteByMember(_ context.Context, userID, memberID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, a := range r.accounts {
		nominee := a.NomineeID != nil && *a.NomineeID == memberID
		if a.UserID == userID && (a.HolderID == memberID || nominee) {
			delete(r.accounts, id)
			n++
		}
	}
	return n, nil
}

type memReminderRepo struct{ *memStore }

func (r memReminderRepo) List(_ context.Context, userID string) ([]models.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Reminder
	for _, rem := range r.reminders {
		if rem.UserID == userID {
			out = append(out, rem)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReminderDate.Before(out[j].ReminderDate) })
	return out, nil
}

func (r memReminderRepo) Create(_ context.Context, rem *models.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rem.ID == "" {
		rem.ID = r.nextID("rem")
	}
	r.reminders[rem.ID] = *rem
	return nil
}

func (r memReminderRepo) Delete(_ context.Context, _, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reminders[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.reminders, id)
	return nil
}

func (r memReminderRepo) deleteWhere(match func(models.Reminder) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, rem := range r.reminders {
		if match(rem) {
			delete(r.reminders, id)
			n++
		}
	}
	return n
}

func (r memReminderRepo) DeleteByMember(_ context.Context, userID, memberID string) (int64, error) {
	return r.deleteWhere(func(rem models.Reminder) bool { return rem.UserID == userID && rem.MemberID == memberID }), nil
}

func (r memReminderRepo) DeleteByInvestment(_ context.Context, userID, investmentID string) (int64, error) {
	return r.deleteWhere(func(rem models.Reminder) bool {
		return rem.UserID == userID && rem.InvestmentID != nil && *rem.InvestmentID == investmentID
	}), nil
}

func (r memReminderRepo) ReplaceAutoGenerated(_ context.Context, userID string, reminders []models.Reminder) (int64, error) {
	if r.replaceErr != nil {
		return 0, r.replaceErr
	}
	removed := r.deleteWhere(func(rem models.Reminder) bool { return rem.UserID == userID && rem.AutoGenerated })
	for i := range reminders {
		if err := r.Create(context.Background(), &reminders[i]); err != nil {
			return 0, err
		}
	}
	return removed, nil
}

// fakeAdapter serves canned records and uses the shared field heuristics.
type fakeAdapter struct {
	name     string
	records  []brokers.VendorRecord
	fetchErr error
	fetches  int
}

func (a *fakeAdapter) Name() string { return a.name }

func (a *fakeAdapter) Authenticate(_ context.Context, creds brokers.Credentials) (*brokers.Session, error) {
	if creds.Password == "" && creds.RequestToken == "" {
		return nil, fmt.Errorf("missing credentials")
	}
	return &brokers.Session{Broker: a.name, UserID: creds.UserID, AccessToken: "token-" + creds.APIKey}, nil
}

func (a *fakeAdapter) FetchHoldings(_ context.Context, _ *brokers.Session) ([]brokers.VendorRecord, error) {
	a.fetches++
	if a.fetchErr != nil {
		return nil, a.fetchErr
	}
	return a.records, nil
}

func (a *fakeAdapter) Classify(record brokers.VendorRecord) models.AssetClass {
	return brokers.ClassifyByIndicators(record)
}

func (a *fakeAdapter) Extract(record brokers.VendorRecord, class models.AssetClass) brokers.Position {
	return brokers.ExtractCommon(record, class)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []schemas.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e schemas.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}
