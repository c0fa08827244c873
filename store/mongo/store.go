// Package mongo implements store.Store on MongoDB. Balance movements
// run inside multi-document transactions, so it requires a replica set
// or sharded deployment.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	ledger "github.com/hdriqi/paras-backend"
	"github.com/hdriqi/paras-backend/activity"
	"github.com/hdriqi/paras-backend/ranking"
	"github.com/hdriqi/paras-backend/resource"
	"github.com/hdriqi/paras-backend/stake"
	ledgerstore "github.com/hdriqi/paras-backend/store"
	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

// Collection name constants.
const (
	colBalances = "ledger_balances"
	colSupply   = "ledger_supply"
	colEntries  = "ledger_transactions"
	colStakes   = "ledger_stakes"
	colPoints   = "ledger_activity_points"
	colHistory  = "ledger_activity_history"
	colScores   = "ledger_post_scores"
	colEpochs   = "ledger_reward_epochs"
)

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Config locates the ledger's database and the host application's
// content collections.
type Config struct {
	Database          string
	PostCollection    string // defaults to "posts"
	MementoCollection string // defaults to "mementos"
}

// Store implements store.Store using the official MongoDB driver.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
}

// New creates a MongoDB store on an already-connected client.
func New(client *mongo.Client, cfg Config) *Store {
	if cfg.PostCollection == "" {
		cfg.PostCollection = "posts"
	}
	if cfg.MementoCollection == "" {
		cfg.MementoCollection = "mementos"
	}
	return &Store{
		client: client,
		db:     client.Database(cfg.Database),
		cfg:    cfg,
	}
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// Migrate creates indexes for all ledger collections.
func (s *Store) Migrate(ctx context.Context) error {
	for col, models := range migrationIndexes() {
		if len(models) == 0 {
			continue
		}
		if _, err := s.col(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("ledger/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colEntries: {
			{Keys: bson.D{{Key: "from", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "to", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "tag", Value: 1}}},
		},
		colStakes: {
			{Keys: bson.D{{Key: "resource_id", Value: 1}}},
		},
		colPoints: {
			{Keys: bson.D{{Key: "point", Value: -1}}},
		},
		colHistory: {
			{Keys: bson.D{{Key: "account_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// inTransaction runs fn inside a session transaction. The driver
// retries transient commit conflicts internally.
func (s *Store) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("ledger/mongo: start session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(ctx context.Context) (any, error) {
		return nil, fn(ctx)
	})
	return err
}

// ==================== Balance Store ====================

func (s *Store) BalanceOf(ctx context.Context, accountID string) (types.Amount, error) {
	var m balanceModel
	err := s.col(colBalances).FindOne(ctx, bson.M{"_id": accountID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return types.ZeroAmount(), nil
		}
		return types.ZeroAmount(), fmt.Errorf("ledger/mongo: balance of %s: %w", accountID, err)
	}
	return types.ParseAmount(m.Balance)
}

func (s *Store) ApplyTransfer(ctx context.Context, e *txlog.Entry) error {
	return s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.debit(ctx, e.From, e.Value); err != nil {
			return err
		}
		if err := s.credit(ctx, e.To, e.Value); err != nil {
			return err
		}
		if _, err := s.col(colEntries).InsertOne(ctx, toEntryModel(e)); err != nil {
			return fmt.Errorf("ledger/mongo: append entry: %w", err)
		}
		return nil
	})
}

func (s *Store) Mint(ctx context.Context, e *txlog.Entry) error {
	return s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.credit(ctx, e.To, e.Value); err != nil {
			return err
		}
		if err := s.bumpSupply(ctx, e.Value, types.ZeroAmount()); err != nil {
			return err
		}
		if _, err := s.col(colEntries).InsertOne(ctx, toEntryModel(e)); err != nil {
			return fmt.Errorf("ledger/mongo: append entry: %w", err)
		}
		return nil
	})
}

func (s *Store) Burn(ctx context.Context, e *txlog.Entry) error {
	return s.inTransaction(ctx, func(ctx context.Context) error {
		if err := s.debit(ctx, e.From, e.Value); err != nil {
			return err
		}
		if err := s.bumpSupply(ctx, types.ZeroAmount(), e.Value); err != nil {
			return err
		}
		if _, err := s.col(colEntries).InsertOne(ctx, toEntryModel(e)); err != nil {
			return fmt.Errorf("ledger/mongo: append entry: %w", err)
		}
		return nil
	})
}

func (s *Store) TotalSupply(ctx context.Context) (types.Amount, error) {
	var m supplyModel
	err := s.col(colSupply).FindOne(ctx, bson.M{"_id": supplyDocID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return types.ZeroAmount(), nil
		}
		return types.ZeroAmount(), fmt.Errorf("ledger/mongo: total supply: %w", err)
	}
	minted, err := types.ParseAmount(m.Minted)
	if err != nil {
		return types.ZeroAmount(), err
	}
	burned, err := types.ParseAmount(m.Burned)
	if err != nil {
		return types.ZeroAmount(), err
	}
	return minted.Sub(burned), nil
}

// debit subtracts value from an account balance with a version check.
// A concurrent update between the read and the write surfaces as
// ledger.ErrConcurrencyConflict and aborts the transaction.
func (s *Store) debit(ctx context.Context, accountID string, value types.Amount) error {
	var m balanceModel
	err := s.col(colBalances).FindOne(ctx, bson.M{"_id": accountID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return ledger.ErrInsufficientFunds
		}
		return fmt.Errorf("ledger/mongo: debit %s: %w", accountID, err)
	}

	balance, err := types.ParseAmount(m.Balance)
	if err != nil {
		return err
	}
	if balance.LessThan(value) {
		return ledger.ErrInsufficientFunds
	}

	res, err := s.col(colBalances).UpdateOne(ctx,
		bson.M{"_id": accountID, "version": m.Version},
		bson.M{
			"$set": bson.M{"balance": balance.Sub(value).String()},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return fmt.Errorf("ledger/mongo: debit %s: %w", accountID, err)
	}
	if res.ModifiedCount == 0 {
		return ledger.ErrConcurrencyConflict
	}
	return nil
}

// credit adds value to an account balance, creating the document on
// first use.
func (s *Store) credit(ctx context.Context, accountID string, value types.Amount) error {
	var m balanceModel
	err := s.col(colBalances).FindOne(ctx, bson.M{"_id": accountID}).Decode(&m)
	if err != nil {
		if !isNoDocuments(err) {
			return fmt.Errorf("ledger/mongo: credit %s: %w", accountID, err)
		}
		_, err = s.col(colBalances).InsertOne(ctx, &balanceModel{
			ID:      accountID,
			Balance: value.String(),
			Version: 1,
		})
		if mongo.IsDuplicateKeyError(err) {
			return ledger.ErrConcurrencyConflict
		}
		if err != nil {
			return fmt.Errorf("ledger/mongo: credit %s: %w", accountID, err)
		}
		return nil
	}

	balance, err := types.ParseAmount(m.Balance)
	if err != nil {
		return err
	}
	res, err := s.col(colBalances).UpdateOne(ctx,
		bson.M{"_id": accountID, "version": m.Version},
		bson.M{
			"$set": bson.M{"balance": balance.Add(value).String()},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return fmt.Errorf("ledger/mongo: credit %s: %w", accountID, err)
	}
	if res.ModifiedCount == 0 {
		return ledger.ErrConcurrencyConflict
	}
	return nil
}

// bumpSupply folds a mint or burn into the supply singleton.
func (s *Store) bumpSupply(ctx context.Context, mintDelta, burnDelta types.Amount) error {
	var m supplyModel
	err := s.col(colSupply).FindOne(ctx, bson.M{"_id": supplyDocID}).Decode(&m)
	if err != nil {
		if !isNoDocuments(err) {
			return fmt.Errorf("ledger/mongo: supply: %w", err)
		}
		_, err = s.col(colSupply).InsertOne(ctx, &supplyModel{
			ID:     supplyDocID,
			Minted: mintDelta.String(),
			Burned: burnDelta.String(),
		})
		if mongo.IsDuplicateKeyError(err) {
			return ledger.ErrConcurrencyConflict
		}
		if err != nil {
			return fmt.Errorf("ledger/mongo: supply: %w", err)
		}
		return nil
	}

	minted, err := types.ParseAmount(m.Minted)
	if err != nil {
		return err
	}
	burned, err := types.ParseAmount(m.Burned)
	if err != nil {
		return err
	}
	_, err = s.col(colSupply).UpdateOne(ctx,
		bson.M{"_id": supplyDocID},
		bson.M{"$set": bson.M{
			"minted": minted.Add(mintDelta).String(),
			"burned": burned.Add(burnDelta).String(),
		}})
	if err != nil {
		return fmt.Errorf("ledger/mongo: supply: %w", err)
	}
	return nil
}

// ==================== Transaction log Store ====================

func (s *Store) Transactions(ctx context.Context, accountID string, skip, limit int64) ([]*txlog.Entry, error) {
	filter := bson.M{"$or": []bson.M{{"from": accountID}, {"to": accountID}}}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := s.col(colEntries).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: transactions of %s: %w", accountID, err)
	}
	defer cur.Close(ctx)

	var out []*txlog.Entry
	for cur.Next(ctx) {
		var m entryModel
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("ledger/mongo: decode entry: %w", err)
		}
		e, err := fromEntryModel(&m)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

func (s *Store) TipperTotals(ctx context.Context, resourceID string) ([]txlog.TipperTotal, error) {
	pieceTag := txlog.SystemTag(txlog.KindPiece, resourceID)
	supporterTag := txlog.SystemTag(txlog.KindPieceSupporter, resourceID)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"tag": bson.M{"$in": []string{pieceTag, supporterTag}}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$from",
			"total": bson.M{"$sum": bson.M{"$toDecimal": "$value"}},
		}}},
		{{Key: "$project", Value: bson.M{"total": bson.M{"$toString": "$total"}}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := s.col(colEntries).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: tipper totals for %s: %w", resourceID, err)
	}
	defer cur.Close(ctx)

	var out []txlog.TipperTotal
	for cur.Next(ctx) {
		var row struct {
			ID    string `bson:"_id"`
			Total string `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("ledger/mongo: decode tipper total: %w", err)
		}
		total, err := types.ParseAmount(row.Total)
		if err != nil {
			return nil, fmt.Errorf("ledger/mongo: tipper total of %s: %w", row.ID, err)
		}
		out = append(out, txlog.TipperTotal{AccountID: row.ID, Total: total})
	}
	return out, cur.Err()
}

// ==================== Stake Store ====================

func (s *Store) GetStake(ctx context.Context, resourceID, accountID string) (types.Amount, error) {
	var m stakeModel
	err := s.col(colStakes).FindOne(ctx, bson.M{"_id": stakeDocID(resourceID, accountID)}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return types.ZeroAmount(), nil
		}
		return types.ZeroAmount(), fmt.Errorf("ledger/mongo: stake of %s on %s: %w", accountID, resourceID, err)
	}
	return types.ParseAmount(m.Value)
}

func (s *Store) StakesByResource(ctx context.Context, resourceID string) ([]*stake.Stake, error) {
	cur, err := s.col(colStakes).Find(ctx,
		bson.M{"resource_id": resourceID, "value": bson.M{"$ne": "0"}},
		options.Find().SetSort(bson.D{{Key: "account_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: stakes on %s: %w", resourceID, err)
	}
	defer cur.Close(ctx)

	var out []*stake.Stake
	for cur.Next(ctx) {
		var m stakeModel
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("ledger/mongo: decode stake: %w", err)
		}
		st, err := fromStakeModel(&m)
		if err != nil {
			return nil, err
		}
		if st.Value.IsPositive() {
			out = append(out, st)
		}
	}
	return out, cur.Err()
}

func (s *Store) TotalStake(ctx context.Context, resourceID string) (types.Amount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"resource_id": resourceID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": bson.M{"$toDecimal": "$value"}},
		}}},
		{{Key: "$project", Value: bson.M{"total": bson.M{"$toString": "$total"}}}},
	}

	cur, err := s.col(colStakes).Aggregate(ctx, pipeline)
	if err != nil {
		return types.ZeroAmount(), fmt.Errorf("ledger/mongo: total stake on %s: %w", resourceID, err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return types.ZeroAmount(), cur.Err()
	}
	var row struct {
		Total string `bson:"total"`
	}
	if err := cur.Decode(&row); err != nil {
		return types.ZeroAmount(), fmt.Errorf("ledger/mongo: decode total stake: %w", err)
	}
	return types.ParseAmount(row.Total)
}

func (s *Store) IncrementStake(ctx context.Context, resourceID, accountID string, delta types.Amount) error {
	return s.adjustStake(ctx, resourceID, accountID, delta, false)
}

func (s *Store) DecrementStake(ctx context.Context, resourceID, accountID string, delta types.Amount) error {
	return s.adjustStake(ctx, resourceID, accountID, delta, true)
}

func (s *Store) adjustStake(ctx context.Context, resourceID, accountID string, delta types.Amount, subtract bool) error {
	docID := stakeDocID(resourceID, accountID)
	now := time.Now().UTC()

	var m stakeModel
	err := s.col(colStakes).FindOne(ctx, bson.M{"_id": docID}).Decode(&m)
	if err != nil {
		if !isNoDocuments(err) {
			return fmt.Errorf("ledger/mongo: stake %s: %w", docID, err)
		}
		if subtract {
			return nil
		}
		_, err = s.col(colStakes).InsertOne(ctx, &stakeModel{
			ID:         docID,
			ResourceID: resourceID,
			AccountID:  accountID,
			Value:      delta.String(),
			Version:    1,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if mongo.IsDuplicateKeyError(err) {
			return ledger.ErrConcurrencyConflict
		}
		if err != nil {
			return fmt.Errorf("ledger/mongo: stake %s: %w", docID, err)
		}
		return nil
	}

	value, err := types.ParseAmount(m.Value)
	if err != nil {
		return err
	}
	if subtract {
		if value.LessThan(delta) {
			value = types.ZeroAmount()
		} else {
			value = value.Sub(delta)
		}
	} else {
		value = value.Add(delta)
	}

	res, err := s.col(colStakes).UpdateOne(ctx,
		bson.M{"_id": docID, "version": m.Version},
		bson.M{
			"$set": bson.M{"value": value.String(), "updated_at": now},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return fmt.Errorf("ledger/mongo: stake %s: %w", docID, err)
	}
	if res.ModifiedCount == 0 {
		return ledger.ErrConcurrencyConflict
	}
	return nil
}

// ==================== Activity point Store ====================

func (s *Store) PointsOf(ctx context.Context, accountID string) (int, error) {
	var m pointModel
	err := s.col(colPoints).FindOne(ctx, bson.M{"_id": accountID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("ledger/mongo: points of %s: %w", accountID, err)
	}
	return m.Point, nil
}

func (s *Store) ActivePoints(ctx context.Context) ([]activity.Point, error) {
	cur, err := s.col(colPoints).Find(ctx,
		bson.M{"point": bson.M{"$gt": 0}},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: active points: %w", err)
	}
	defer cur.Close(ctx)

	var out []activity.Point
	for cur.Next(ctx) {
		var m pointModel
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("ledger/mongo: decode points: %w", err)
		}
		out = append(out, activity.Point{AccountID: m.ID, Point: m.Point})
	}
	return out, cur.Err()
}

func (s *Store) AddPoints(ctx context.Context, e *activity.HistoryEntry) error {
	return s.inTransaction(ctx, func(ctx context.Context) error {
		_, err := s.col(colPoints).UpdateOne(ctx,
			bson.M{"_id": e.AccountID},
			bson.M{
				"$inc": bson.M{"point": e.Point},
				"$set": bson.M{"updated_at": time.Now().UTC()},
			},
			options.UpdateOne().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("ledger/mongo: add points for %s: %w", e.AccountID, err)
		}
		if _, err := s.col(colHistory).InsertOne(ctx, toHistoryModel(e)); err != nil {
			return fmt.Errorf("ledger/mongo: append history: %w", err)
		}
		return nil
	})
}

func (s *Store) SlashPoints(ctx context.Context, e *activity.HistoryEntry) (applied bool, err error) {
	err = s.inTransaction(ctx, func(ctx context.Context) error {
		var m pointModel
		err := s.col(colPoints).FindOne(ctx, bson.M{"_id": e.AccountID}).Decode(&m)
		if err != nil {
			if isNoDocuments(err) {
				return nil
			}
			return fmt.Errorf("ledger/mongo: slash points for %s: %w", e.AccountID, err)
		}
		if m.Point <= 0 {
			return nil
		}
		if e.Point > m.Point {
			e.Point = m.Point
		}

		_, err = s.col(colPoints).UpdateOne(ctx,
			bson.M{"_id": e.AccountID},
			bson.M{
				"$inc": bson.M{"point": -e.Point},
				"$set": bson.M{"updated_at": time.Now().UTC()},
			})
		if err != nil {
			return fmt.Errorf("ledger/mongo: slash points for %s: %w", e.AccountID, err)
		}
		if _, err := s.col(colHistory).InsertOne(ctx, toHistoryModel(e)); err != nil {
			return fmt.Errorf("ledger/mongo: append history: %w", err)
		}
		applied = true
		return nil
	})
	return applied, err
}

func (s *Store) ResetPoints(ctx context.Context) error {
	_, err := s.col(colPoints).UpdateMany(ctx,
		bson.M{},
		bson.M{"$set": bson.M{"point": 0, "updated_at": time.Now().UTC()}})
	if err != nil {
		return fmt.Errorf("ledger/mongo: reset points: %w", err)
	}
	return nil
}

func (s *Store) ActivityHistory(ctx context.Context, accountID string) ([]*activity.HistoryEntry, error) {
	cur, err := s.col(colHistory).Find(ctx,
		bson.M{"account_id": accountID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("ledger/mongo: history of %s: %w", accountID, err)
	}
	defer cur.Close(ctx)

	var out []*activity.HistoryEntry
	for cur.Next(ctx) {
		var m historyModel
		if err := cur.Decode(&m); err != nil {
			return nil, fmt.Errorf("ledger/mongo: decode history: %w", err)
		}
		e, err := fromHistoryModel(&m)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

// ==================== Ranking Store ====================

func (s *Store) GetScore(ctx context.Context, resourceID string) (*ranking.PostScore, error) {
	var m scoreModel
	err := s.col(colScores).FindOne(ctx, bson.M{"_id": resourceID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: score of %s: %w", resourceID, err)
	}
	return fromScoreModel(&m)
}

func (s *Store) UpsertScore(ctx context.Context, sc *ranking.PostScore) error {
	m := toScoreModel(sc)
	m.UpdatedAt = time.Now().UTC()
	_, err := s.col(colScores).ReplaceOne(ctx,
		bson.M{"_id": m.ID}, m,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("ledger/mongo: upsert score of %s: %w", m.ID, err)
	}
	return nil
}

// ==================== Resource Store ====================

// GetResource reads the host application's content collections: posts
// first, then mementos. A post inside a memento reports that memento
// as its collection.
func (s *Store) GetResource(ctx context.Context, resourceID string) (*resource.Resource, error) {
	var p postModel
	err := s.col(s.cfg.PostCollection).FindOne(ctx, bson.M{"_id": resourceID}).Decode(&p)
	if err == nil {
		return &resource.Resource{
			ID:           p.ID,
			Owner:        p.Owner,
			CollectionID: p.MementoID,
			CreatedAt:    p.CreatedAt,
		}, nil
	}
	if !isNoDocuments(err) {
		return nil, fmt.Errorf("ledger/mongo: resource %s: %w", resourceID, err)
	}

	var m mementoModel
	err = s.col(s.cfg.MementoCollection).FindOne(ctx, bson.M{"_id": resourceID}).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrResourceNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: resource %s: %w", resourceID, err)
	}
	return &resource.Resource{
		ID:        m.ID,
		Owner:     m.Owner,
		CreatedAt: m.CreatedAt,
	}, nil
}

// ==================== Epoch Store ====================

func (s *Store) ClaimEpoch(ctx context.Context, key string) error {
	_, err := s.col(colEpochs).InsertOne(ctx, &epochModel{
		ID:        key,
		CreatedAt: time.Now().UTC(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return ledger.ErrEpochAlreadyMinted
	}
	if err != nil {
		return fmt.Errorf("ledger/mongo: claim epoch %s: %w", key, err)
	}
	return nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
