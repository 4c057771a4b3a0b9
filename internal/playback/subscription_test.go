package playback

import (
	"errors"
	"testing"
	"testing/synctest"
	"time"
)

func TestNewSubscription_ChannelsReadable(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		sub := newSubscription()

		sub.sendSnapshot(Snapshot{Session: Session{State: StatePlaying}, Volume: 0.4})
		sub.sendError(ErrorEvent{Operation: "resolve", Err: errors.New("boom")})

		snap := <-sub.Changed
		if snap.State != StatePlaying || snap.Volume != 0.4 {
			t.Errorf("Changed = %+v, want Playing at 0.4", snap)
		}

		e := <-sub.Errors
		if e.Operation != "resolve" {
			t.Errorf("Errors.Operation = %q, want resolve", e.Operation)
		}
	})
}

func TestSubscription_Close_SignalsDone(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		sub := newSubscription()
		sub.close()
		<-sub.Done
	})
}

func TestSubscription_Changed_KeepsLatest(t *testing.T) {
	sub := newSubscription()

	for i := range 5 {
		sub.sendSnapshot(Snapshot{Session: Session{Position: time.Duration(i) * time.Second}})
	}

	snap := <-sub.Changed
	if snap.Position != 4*time.Second {
		t.Errorf("Position = %v, want the latest (4s)", snap.Position)
	}
	select {
	case extra := <-sub.Changed:
		t.Errorf("unexpected extra snapshot %+v", extra)
	default:
	}
}

func TestSubscription_Errors_DropsWhenFull(t *testing.T) {
	sub := newSubscription()

	for range eventBufferSize + 5 {
		sub.sendError(ErrorEvent{})
	}

	count := 0
	for {
		select {
		case <-sub.Errors:
			count++
		default:
			goto done
		}
	}
done:
	if count != eventBufferSize {
		t.Errorf("received %d events, want %d (buffer size)", count, eventBufferSize)
	}
}
