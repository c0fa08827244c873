// Package memory provides an in-memory Store for tests, examples and
// single-process embedding. All state is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/hdriqi/paras-backend"
	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/ranking"
	"github.com/hdriqi/paras-backend/resource"
	"github.com/hdriqi/paras-backend/stake"
	"github.com/hdriqi/paras-backend/store"
	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

type Store struct {
	mu sync.RWMutex

	// Balance storage
	balances map[string]types.Amount
	minted   types.Amount
	burned   types.Amount

	// Transaction log, append order
	entries []*txlog.Entry

	// Stake storage, resourceID -> accountID -> stake
	stakes map[string]map[string]*stake.Stake

	// Activity point storage
	points  map[string]int
	history []*activity.HistoryEntry

	// Ranking storage
	scores map[string]*ranking.PostScore

	// Resource records (seeded, read-only to the ledger)
	resources map[string]*resource.Resource

	// Claimed epoch keys
	epochs map[string]bool

	closed bool
}

func New() *Store {
	return &Store{
		balances:  make(map[string]types.Amount),
		minted:    types.ZeroAmount(),
		burned:    types.ZeroAmount(),
		stakes:    make(map[string]map[string]*stake.Stake),
		points:    make(map[string]int),
		scores:    make(map[string]*ranking.PostScore),
		resources: make(map[string]*resource.Resource),
		epochs:    make(map[string]bool),
	}
}

var _ store.Store = (*Store)(nil)

// PutResource seeds a content record. The ledger itself only reads
// resources; the embedding application registers them here.
func (s *Store) PutResource(res *resource.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[res.ID] = res
}

// Balance Store implementation

func (s *Store) BalanceOf(_ context.Context, accountID string) (types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if b, ok := s.balances[accountID]; ok {
		return b, nil
	}
	return types.ZeroAmount(), nil
}

func (s *Store) ApplyTransfer(_ context.Context, e *txlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.balance(e.From)
	if from.LessThan(e.Value) {
		return ledger.ErrInsufficientFunds
	}
	s.balances[e.From] = from.Sub(e.Value)
	s.balances[e.To] = s.balance(e.To).Add(e.Value)
	s.entries = append(s.entries, e)
	return nil
}

func (s *Store) Mint(_ context.Context, e *txlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[e.To] = s.balance(e.To).Add(e.Value)
	s.minted = s.minted.Add(e.Value)
	s.entries = append(s.entries, e)
	return nil
}

func (s *Store) Burn(_ context.Context, e *txlog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.balance(e.From)
	if from.LessThan(e.Value) {
		return ledger.ErrInsufficientFunds
	}
	s.balances[e.From] = from.Sub(e.Value)
	s.burned = s.burned.Add(e.Value)
	s.entries = append(s.entries, e)
	return nil
}

func (s *Store) TotalSupply(_ context.Context) (types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minted.Sub(s.burned), nil
}

// balance must be called with the lock held.
func (s *Store) balance(accountID string) types.Amount {
	if b, ok := s.balances[accountID]; ok {
		return b
	}
	return types.ZeroAmount()
}

// Transaction log Store implementation

func (s *Store) Transactions(_ context.Context, accountID string, skip, limit int64) ([]*txlog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*txlog.Entry, 0, limit)
	skipped := int64(0)
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.From != accountID && e.To != accountID {
			continue
		}
		if skipped < skip {
			skipped++
			continue
		}
		out = append(out, e)
		if int64(len(out)) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) TipperTotals(_ context.Context, resourceID string) ([]txlog.TipperTotal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[string]types.Amount)
	for _, e := range s.entries {
		kind, res, ok := txlog.ParseSystemTag(e.Tag)
		if !ok || res != resourceID {
			continue
		}
		if kind != txlog.KindPiece && kind != txlog.KindPieceSupporter {
			continue
		}
		cur, ok := totals[e.From]
		if !ok {
			cur = types.ZeroAmount()
		}
		totals[e.From] = cur.Add(e.Value)
	}

	out := make([]txlog.TipperTotal, 0, len(totals))
	for acct, total := range totals {
		out = append(out, txlog.TipperTotal{AccountID: acct, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// Stake Store implementation

func (s *Store) GetStake(_ context.Context, resourceID, accountID string) (types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.stakes[resourceID][accountID]; ok {
		return st.Value, nil
	}
	return types.ZeroAmount(), nil
}

func (s *Store) StakesByResource(_ context.Context, resourceID string) ([]*stake.Stake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*stake.Stake, 0, len(s.stakes[resourceID]))
	for _, st := range s.stakes[resourceID] {
		if st.Value.IsPositive() {
			out = append(out, st)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (s *Store) TotalStake(_ context.Context, resourceID string) (types.Amount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := types.ZeroAmount()
	for _, st := range s.stakes[resourceID] {
		total = total.Add(st.Value)
	}
	return total, nil
}

func (s *Store) IncrementStake(_ context.Context, resourceID, accountID string, delta types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byAccount, ok := s.stakes[resourceID]
	if !ok {
		byAccount = make(map[string]*stake.Stake)
		s.stakes[resourceID] = byAccount
	}
	st, ok := byAccount[accountID]
	if !ok {
		st = &stake.Stake{
			Entity:     types.NewEntity(),
			ResourceID: resourceID,
			AccountID:  accountID,
			Value:      types.ZeroAmount(),
		}
		byAccount[accountID] = st
	}
	st.Value = st.Value.Add(delta)
	st.Touch()
	return nil
}

func (s *Store) DecrementStake(_ context.Context, resourceID, accountID string, delta types.Amount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stakes[resourceID][accountID]
	if !ok {
		return nil
	}
	if st.Value.LessThan(delta) {
		st.Value = types.ZeroAmount()
	} else {
		st.Value = st.Value.Sub(delta)
	}
	st.Touch()
	return nil
}

// Activity point Store implementation

func (s *Store) PointsOf(_ context.Context, accountID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.points[accountID], nil
}

func (s *Store) ActivePoints(_ context.Context) ([]activity.Point, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]activity.Point, 0, len(s.points))
	for acct, p := range s.points {
		if p > 0 {
			out = append(out, activity.Point{AccountID: acct, Point: p})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (s *Store) AddPoints(_ context.Context, e *activity.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.points[e.AccountID] += e.Point
	s.history = append(s.history, e)
	return nil
}

func (s *Store) SlashPoints(_ context.Context, e *activity.HistoryEntry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.points[e.AccountID]
	if cur <= 0 {
		return false, nil
	}
	if e.Point > cur {
		e.Point = cur
	}
	s.points[e.AccountID] = cur - e.Point
	s.history = append(s.history, e)
	return true, nil
}

func (s *Store) ResetPoints(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.points = make(map[string]int)
	return nil
}

func (s *Store) ActivityHistory(_ context.Context, accountID string) ([]*activity.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*activity.HistoryEntry
	for i := len(s.history) - 1; i >= 0; i-- {
		if s.history[i].AccountID == accountID {
			out = append(out, s.history[i])
		}
	}
	return out, nil
}

// Ranking Store implementation

func (s *Store) GetScore(_ context.Context, resourceID string) (*ranking.PostScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if sc, ok := s.scores[resourceID]; ok {
		return sc, nil
	}
	return nil, ledger.ErrNotFound
}

func (s *Store) UpsertScore(_ context.Context, sc *ranking.PostScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sc.Touch()
	s.scores[sc.ResourceID] = sc
	return nil
}

// Resource Store implementation

func (s *Store) GetResource(_ context.Context, resourceID string) (*resource.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if res, ok := s.resources[resourceID]; ok {
		return res, nil
	}
	return nil, ledger.ErrResourceNotFound
}

// Epoch Store implementation

func (s *Store) ClaimEpoch(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epochs[key] {
		return ledger.ErrEpochAlreadyMinted
	}
	s.epochs[key] = true
	return nil
}

// Core Store implementation

func (s *Store) Migrate(_ context.Context) error { return nil }

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ledger.ErrStoreClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
