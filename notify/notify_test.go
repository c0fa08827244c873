package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/hdriqi/paras-backend/txlog"
	"github.com/hdriqi/paras-backend/types"
)

func collect(sent *[]Notification) Sender {
	return SenderFunc(func(_ context.Context, n Notification) error {
		*sent = append(*sent, n)
		return nil
	})
}

func TestWalletNotifierMessages(t *testing.T) {
	tests := []struct {
		name    string
		entry   *txlog.Entry
		message string
		screen  string
		target  string
	}{
		{
			name:    "user transfer",
			entry:   txlog.New("alice", "bob", types.Tokens(5), "thanks!"),
			message: "You received 5.0 PAC from alice",
			screen:  ScreenWalletHistory,
			target:  "alice",
		},
		{
			name:    "piece",
			entry:   txlog.New("bob", "owner", types.Tokens(1), txlog.SystemTag(txlog.KindPiece, "post1")),
			message: "You received 1.0 PAC via Piece by bob",
			screen:  ScreenPost,
			target:  "post1",
		},
		{
			name:    "supporter payout",
			entry:   txlog.New("bob", "carol", types.MustParse("200000000000000000"), txlog.SystemTag(txlog.KindPieceSupporter, "post1")),
			message: "You received 0.2 PAC via supporter payout",
			screen:  ScreenPost,
			target:  "post1",
		},
		{
			name:    "daily reward",
			entry:   txlog.New("paras::disburse", "alice", types.Tokens(100), txlog.SystemTag(txlog.KindRewardDisburse, "")),
			message: "You received 100.0 PAC via Daily Reward",
			screen:  ScreenWalletHistory,
			target:  "paras::disburse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sent []Notification
			n := NewWalletNotifier(collect(&sent))

			if err := n.OnTransfer(context.Background(), tt.entry); err != nil {
				t.Fatalf("OnTransfer: %v", err)
			}
			if len(sent) != 1 {
				t.Fatalf("sent %d notifications, want 1", len(sent))
			}
			got := sent[0]
			if got.Message != tt.message {
				t.Errorf("message: got %q, want %q", got.Message, tt.message)
			}
			if got.Screen != tt.screen || got.TargetID != tt.target {
				t.Errorf("payload: got %s/%s, want %s/%s", got.Screen, got.TargetID, tt.screen, tt.target)
			}
			if got.UserID != tt.entry.To {
				t.Errorf("recipient: got %s, want %s", got.UserID, tt.entry.To)
			}
		})
	}
}

func TestWalletNotifierSilentKinds(t *testing.T) {
	silent := []*txlog.Entry{
		txlog.New("alice", "paras::locked::post1", types.Tokens(1), txlog.SystemTag(txlog.KindLock, "post1")),
		txlog.New("paras::locked::post1", "alice", types.Tokens(1), txlog.SystemTag(txlog.KindUnlock, "post1")),
		txlog.New("alice", "owner", types.Tokens(1), txlog.SystemTag(txlog.KindIncome, "post1")),
		txlog.New("alice", "owner", types.Tokens(1), txlog.SystemTag(txlog.KindFee, "post1")),
	}

	for _, e := range silent {
		var sent []Notification
		n := NewWalletNotifier(collect(&sent))
		if err := n.OnTransfer(context.Background(), e); err != nil {
			t.Fatalf("OnTransfer: %v", err)
		}
		if len(sent) != 0 {
			t.Errorf("tag %q should be silent, sent %d", e.Tag, len(sent))
		}
	}
}

func TestWalletNotifierDeliveryFailureNotPropagated(t *testing.T) {
	n := NewWalletNotifier(SenderFunc(func(context.Context, Notification) error {
		return errors.New("push gateway down")
	}))

	e := txlog.New("alice", "bob", types.Tokens(1), "")
	if err := n.OnTransfer(context.Background(), e); err != nil {
		t.Errorf("delivery failure must not fail the transfer hook: %v", err)
	}
}
