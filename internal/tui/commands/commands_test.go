package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javiermolinar/rota/internal/calendar"
)

type fakeRepo struct {
	resources     []calendar.Resource
	eventsBetween func(start, end time.Time) ([]calendar.RawEvent, error)
	reschedule    func(calendar.RescheduleIntent) error
}

func (f fakeRepo) CreateResource(ctx context.Context, r calendar.Resource) error {
	return errors.New("not implemented")
}

func (f fakeRepo) ListResources(ctx context.Context) ([]calendar.Resource, error) {
	return f.resources, nil
}

func (f fakeRepo) CreateEvent(ctx context.Context, ev *calendar.RawEvent) error {
	return errors.New("not implemented")
}

func (f fakeRepo) GetEvent(ctx context.Context, id string) (calendar.RawEvent, error) {
	return calendar.RawEvent{}, errors.New("not implemented")
}

func (f fakeRepo) ListEvents(ctx context.Context) ([]calendar.RawEvent, error) {
	return nil, errors.New("not implemented")
}

func (f fakeRepo) ListEventsBetween(ctx context.Context, start, end time.Time) ([]calendar.RawEvent, error) {
	if f.eventsBetween == nil {
		return nil, errors.New("not implemented")
	}
	return f.eventsBetween(start, end)
}

func (f fakeRepo) ApplyReschedule(ctx context.Context, intent calendar.RescheduleIntent) error {
	if f.reschedule == nil {
		return errors.New("not implemented")
	}
	return f.reschedule(intent)
}

func (f fakeRepo) DeleteEvent(ctx context.Context, id string) error {
	return errors.New("not implemented")
}

func (f fakeRepo) Close() error {
	return nil
}

func TestLoadPage(t *testing.T) {
	start := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	var gotStart, gotEnd time.Time
	repo := fakeRepo{
		resources: []calendar.Resource{{ID: "r1", Title: "Room 1"}},
		eventsBetween: func(s, e time.Time) ([]calendar.RawEvent, error) {
			gotStart, gotEnd = s, e
			return []calendar.RawEvent{{ID: "e1", Start: calendar.Text("2024-01-10"), ResourceID: "r1"}}, nil
		},
	}

	msg := LoadPage(repo, start, end)()
	loaded, ok := msg.(PageLoadedMsg)
	require.True(t, ok, "expected PageLoadedMsg, got %T", msg)
	assert.True(t, gotStart.Equal(start))
	assert.True(t, gotEnd.Equal(end))
	assert.Len(t, loaded.Resources, 1)
	assert.Len(t, loaded.Events, 1)
	assert.True(t, loaded.Start.Equal(start))
}

func TestLoadPage_Error(t *testing.T) {
	repo := fakeRepo{
		eventsBetween: func(time.Time, time.Time) ([]calendar.RawEvent, error) {
			return nil, errors.New("boom")
		},
	}

	msg := LoadPage(repo, time.Now(), time.Now())()
	errMsg, ok := msg.(ErrMsg)
	require.True(t, ok, "expected ErrMsg, got %T", msg)
	assert.ErrorContains(t, errMsg.Err, "loading events")
}

func TestApplyReschedule(t *testing.T) {
	var stored []calendar.RescheduleIntent
	repo := fakeRepo{reschedule: func(i calendar.RescheduleIntent) error {
		stored = append(stored, i)
		return nil
	}}

	intent := calendar.RescheduleIntent{Event: calendar.RawEvent{ID: "e1"}, DeltaDays: 2, ResourceID: "r2"}
	msg := ApplyReschedule(repo, intent)()
	done, ok := msg.(RescheduledMsg)
	require.True(t, ok, "expected RescheduledMsg, got %T", msg)
	assert.Equal(t, intent, done.Intent)
	require.Len(t, stored, 1)
}

func TestApplyReschedule_Error(t *testing.T) {
	repo := fakeRepo{reschedule: func(calendar.RescheduleIntent) error {
		return calendar.ErrEventNotFound
	}}

	msg := ApplyReschedule(repo, calendar.RescheduleIntent{Event: calendar.RawEvent{ID: "gone", Title: "Gone"}})()
	errMsg, ok := msg.(ErrMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, calendar.ErrEventNotFound)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, StatusMsgCmd{Msg: "saved"}, Status("saved")())
}
