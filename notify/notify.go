// Package notify turns committed transfer events into user-facing push
// notifications. Delivery is best effort: failures are logged, never
// propagated into ledger operations.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hdriqi/paras-backend/txlog"
)

// Screens a notification can deep-link into.
const (
	ScreenPost          = "post"
	ScreenWalletHistory = "walletHistory"
)

// Title shown on every push notification.
const Title = "Paras"

// Notification is one push message for one account.
type Notification struct {
	UserID    string    `json:"user_id"    bson:"user_id"`
	Screen    string    `json:"screen"     bson:"screen"`
	TargetID  string    `json:"target_id"  bson:"target_id"`
	Message   string    `json:"message"    bson:"message"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Sender delivers a notification to a device or inbox.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// SenderFunc adapts a function to the Sender interface.
type SenderFunc func(ctx context.Context, n Notification) error

func (f SenderFunc) Send(ctx context.Context, n Notification) error { return f(ctx, n) }

// WalletNotifier implements the ledger's transfer hook and notifies the
// receiving account. Register it on a Ledger:
//
//	l := ledger.New(st, ledger.WithHook(notify.NewWalletNotifier(sender)))
type WalletNotifier struct {
	sender Sender
	logger *slog.Logger
}

func NewWalletNotifier(sender Sender, opts ...Option) *WalletNotifier {
	n := &WalletNotifier{
		sender: sender,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Option configures a WalletNotifier.
type Option func(*WalletNotifier)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(n *WalletNotifier) {
		if logger != nil {
			n.logger = logger
		}
	}
}

func (n *WalletNotifier) Name() string { return "wallet-notifier" }

// OnTransfer builds the receiver's notification for a committed
// transfer. Lock and unlock movements stay silent: they shuffle a
// user's own tokens.
func (n *WalletNotifier) OnTransfer(ctx context.Context, e *txlog.Entry) error {
	msg, ok := n.buildNotification(e)
	if !ok {
		return nil
	}
	if err := n.sender.Send(ctx, msg); err != nil {
		n.logger.Warn("notification delivery failed",
			"user", msg.UserID, "screen", msg.Screen, "error", err)
	}
	return nil
}

func (n *WalletNotifier) buildNotification(e *txlog.Entry) (Notification, bool) {
	base := Notification{
		UserID:    e.To,
		CreatedAt: time.Now().UTC(),
	}

	kind, resourceID, isSystem := txlog.ParseSystemTag(e.Tag)
	if !isSystem {
		base.Screen = ScreenWalletHistory
		base.TargetID = e.From
		base.Message = fmt.Sprintf("You received %s PAC from %s", e.Value.Pretty(), e.From)
		return base, true
	}

	switch kind {
	case txlog.KindPiece:
		base.Screen = ScreenPost
		base.TargetID = resourceID
		base.Message = fmt.Sprintf("You received %s PAC via Piece by %s", e.Value.Pretty(), e.From)
		return base, true
	case txlog.KindPieceSupporter:
		base.Screen = ScreenPost
		base.TargetID = resourceID
		base.Message = fmt.Sprintf("You received %s PAC via supporter payout", e.Value.Pretty())
		return base, true
	case txlog.KindRewardDisburse:
		base.Screen = ScreenWalletHistory
		base.TargetID = e.From
		base.Message = fmt.Sprintf("You received %s PAC via Daily Reward", e.Value.Pretty())
		return base, true
	default:
		return Notification{}, false
	}
}
