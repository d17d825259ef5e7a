package reminder

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"janudairy/m/domain"
)

type staticSource struct {
	entries []domain.PendingReminder
	err     error
}

func (s staticSource) ListPendingWithChannel(context.Context) ([]domain.PendingReminder, error) {
	return s.entries, s.err
}

type fakeSender struct {
	sent    []string
	failFor map[string]error
}

func (f *fakeSender) Send(to, subject, body string) error {
	if err, ok := f.failFor[to]; ok {
		return err
	}
	f.sent = append(f.sent, to)
	return nil
}

func TestDispatch_PerEntryResults(t *testing.T) {
	source := staticSource{entries: []domain.PendingReminder{
		{Customer: "Asha", Amount: 120, Channel: "asha@example.com"},
		{Customer: "Ravi", Amount: 45, Channel: ""},
		{Customer: "Meena", Amount: 60, Channel: "meena@example.com"},
	}}
	sender := &fakeSender{failFor: map[string]error{
		"asha@example.com": errors.New("relay rejected"),
	}}
	d := NewDispatcher(source, sender, zap.NewNop())

	results, err := d.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].Status != StatusFailed || results[0].Error == "" {
		t.Errorf("results[0] = %+v, want failed with error text", results[0])
	}
	if results[1].Status != StatusNoChannel {
		t.Errorf("results[1].Status = %q, want %q", results[1].Status, StatusNoChannel)
	}
	// Asha's failure must not stop Meena's delivery.
	if results[2].Status != StatusSent {
		t.Errorf("results[2].Status = %q, want %q", results[2].Status, StatusSent)
	}
	if len(sender.sent) != 1 || sender.sent[0] != "meena@example.com" {
		t.Errorf("sender.sent = %v, want [meena@example.com]", sender.sent)
	}
}

func TestDispatch_NoChannelEntriesNeverAttempted(t *testing.T) {
	source := staticSource{entries: []domain.PendingReminder{
		{Customer: "Ravi", Amount: 45},
	}}
	sender := &fakeSender{}
	d := NewDispatcher(source, sender, zap.NewNop())

	results, err := d.Dispatch(context.Background())
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(results) != 1 || results[0].Status != StatusNoChannel {
		t.Fatalf("results = %+v, want one no_channel entry", results)
	}
	if len(sender.sent) != 0 {
		t.Errorf("sender.sent = %v, want no attempts", sender.sent)
	}
}

func TestDispatch_SourceError(t *testing.T) {
	d := NewDispatcher(staticSource{err: errors.New("db closed")}, &fakeSender{}, zap.NewNop())
	if _, err := d.Dispatch(context.Background()); err == nil {
		t.Error("Dispatch error = nil, want error")
	}
}
