package booking

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/smart-parking/internal/model"
	"github.com/iliyamo/smart-parking/internal/utils"
)

// fakeStore is an in-memory Store/Tx used to exercise the lifecycle
// without a database.  Within runs the function directly against the
// store; the lifecycle never mutates before its validation checks,
// so rollback semantics are not needed in these tests.
type fakeStore struct {
	slots        map[uint64]*model.Slot
	reservations map[uint64]*model.Reservation
	vehicles     map[uint64]*model.Vehicle
	areas        map[uint64]bool
	nextSlotID   uint64
	nextResID    uint64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		slots:        map[uint64]*model.Slot{},
		reservations: map[uint64]*model.Reservation{},
		vehicles:     map[uint64]*model.Vehicle{},
		areas:        map[uint64]bool{1: true},
	}
}

func (f *fakeStore) Within(ctx context.Context, fn func(tx Tx) error) error { return fn(f) }

func (f *fakeStore) ListByUser(ctx context.Context, userID uint64, activeOnly bool) ([]Detail, error) {
	out := []Detail{}
	for _, r := range f.reservations {
		if r.UserID != userID {
			continue
		}
		if activeOnly && r.Status != model.ReservationActive {
			continue
		}
		d := Detail{
			ID: r.ID, VehicleID: r.VehicleID, SlotID: r.SlotID,
			Status:    r.Status,
			StartTime: utils.FormatTimestamp(r.StartTime),
			EndTime:   utils.FormatTimestamp(r.EndTime),
		}
		if s, ok := f.slots[r.SlotID]; ok {
			d.SlotCode = s.Code
		}
		if v, ok := f.vehicles[r.VehicleID]; ok {
			d.Plate = v.PlateNumber
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeStore) VehicleForUser(ctx context.Context, vehicleID, userID uint64) (model.Vehicle, error) {
	v, ok := f.vehicles[vehicleID]
	if !ok || v.UserID != userID {
		return model.Vehicle{}, ErrVehicleNotFound
	}
	return *v, nil
}

func (f *fakeStore) DueReservations(ctx context.Context, now time.Time) ([]model.Reservation, error) {
	var due []model.Reservation
	for _, r := range f.reservations {
		if r.Status == model.ReservationActive && !r.EndTime.After(now) {
			due = append(due, *r)
		}
	}
	return due, nil
}

func (f *fakeStore) CompleteReservation(ctx context.Context, id uint64) (bool, error) {
	r, ok := f.reservations[id]
	if !ok || r.Status != model.ReservationActive {
		return false, nil
	}
	r.Status = model.ReservationCompleted
	return true, nil
}

func (f *fakeStore) ReservationByID(ctx context.Context, id uint64) (model.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return model.Reservation{}, ErrReservationNotFound
	}
	return *r, nil
}

func (f *fakeStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	f.nextResID++
	r.ID = f.nextResID
	cp := *r
	f.reservations[r.ID] = &cp
	return nil
}

func (f *fakeStore) SetReservationStatus(ctx context.Context, id uint64, from, to model.ReservationStatus) (bool, error) {
	r, ok := f.reservations[id]
	if !ok || r.Status != from {
		return false, nil
	}
	r.Status = to
	return true, nil
}

func (f *fakeStore) DeleteReservation(ctx context.Context, id uint64) error {
	delete(f.reservations, id)
	return nil
}

func (f *fakeStore) AvailableSlotsForUpdate(ctx context.Context, areaID *uint64) ([]model.Slot, error) {
	ids := make([]uint64, 0, len(f.slots))
	for id := range f.slots {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []model.Slot
	for _, id := range ids {
		s := f.slots[id]
		if s.Status != model.SlotAvailable {
			continue
		}
		if areaID != nil && s.AreaID != *areaID {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStore) SlotCodes(ctx context.Context, prefix string) ([]string, error) {
	var codes []string
	for _, s := range f.slots {
		codes = append(codes, s.Code)
	}
	return codes, nil
}

func (f *fakeStore) SlotByID(ctx context.Context, id uint64) (model.Slot, error) {
	s, ok := f.slots[id]
	if !ok {
		return model.Slot{}, errors.New("slot not found")
	}
	return *s, nil
}

func (f *fakeStore) CreateSlot(ctx context.Context, s *model.Slot) error {
	f.nextSlotID++
	s.ID = f.nextSlotID
	cp := *s
	f.slots[s.ID] = &cp
	return nil
}

func (f *fakeStore) ClaimSlot(ctx context.Context, id uint64) (bool, error) {
	s, ok := f.slots[id]
	if !ok || s.Status != model.SlotAvailable {
		return false, nil
	}
	s.Status = model.SlotReserved
	return true, nil
}

func (f *fakeStore) FreeSlot(ctx context.Context, id uint64) (bool, error) {
	s, ok := f.slots[id]
	if !ok || s.Status != model.SlotReserved {
		return false, nil
	}
	s.Status = model.SlotAvailable
	return true, nil
}

func (f *fakeStore) EnsureArea(ctx context.Context, id uint64) error {
	f.areas[id] = true
	return nil
}

// recordingNotifier collects every event for assertions.
type recordingNotifier struct{ events []Event }

func (n *recordingNotifier) Notify(ctx context.Context, ev Event) { n.events = append(n.events, ev) }

func (f *fakeStore) addSlot(code string, l, w float64, st model.SlotStatus) uint64 {
	s := &model.Slot{Code: code, LengthM: l, WidthM: w, AreaID: 1, Status: st}
	f.nextSlotID++
	s.ID = f.nextSlotID
	f.slots[s.ID] = s
	return s.ID
}

func (f *fakeStore) addVehicle(userID uint64, plate string, l, w float64) uint64 {
	id := uint64(len(f.vehicles) + 1)
	f.vehicles[id] = &model.Vehicle{ID: id, UserID: userID, PlateNumber: plate, LengthM: l, WidthM: w}
	return id
}

func fixedNow(s *Service, at time.Time) { s.now = func() time.Time { return at } }

var ctx = context.Background()

func TestCreateRejectsBadWindow(t *testing.T) {
	store := newFakeStore()
	store.addVehicle(1, "AB123", 4.5, 2.0)
	svc := New(store, nil)

	_, err := svc.Create(ctx, 1, 1, "2024-01-01 10:00", "2024-01-01 09:00", nil)
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	_, err = svc.Create(ctx, 1, 1, "2024-01-01 10:00", "2024-01-01 10:00", nil)
	assert.ErrorIs(t, err, ErrEndBeforeStart)

	_, err = svc.Create(ctx, 1, 1, "not a time", "2024-01-01 10:00", nil)
	assert.ErrorIs(t, err, utils.ErrBadTimestamp)

	assert.Empty(t, store.reservations, "no reservation may be written on validation failure")
}

func TestCreateRejectsForeignVehicle(t *testing.T) {
	store := newFakeStore()
	store.addVehicle(7, "ZZ999", 4.5, 2.0) // belongs to user 7
	svc := New(store, nil)

	_, err := svc.Create(ctx, 1, 1, "2024-01-01 10:00", "2024-01-01 12:00", nil)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestCreatePicksBestFitAndClaims(t *testing.T) {
	store := newFakeStore()
	store.addSlot("A1", 6.0, 3.0, model.SlotAvailable)
	small := store.addSlot("A2", 5.0, 2.2, model.SlotAvailable)
	vid := store.addVehicle(1, "AB123", 4.5, 2.0)
	svc := New(store, nil)

	res, err := svc.Create(ctx, 1, vid, "2024-01-01 10:00", "2024-01-01 12:00", nil)
	require.NoError(t, err)
	assert.False(t, res.SlotCreated)
	assert.Equal(t, "A2", res.SlotCode)
	assert.Equal(t, small, res.Reservation.SlotID)
	assert.Equal(t, model.ReservationActive, res.Reservation.Status)
	assert.Equal(t, model.SlotReserved, store.slots[small].Status)
}

func TestCreateSynthesizesWhenNothingFits(t *testing.T) {
	store := newFakeStore()
	store.addSlot("A3", 4.0, 1.8, model.SlotAvailable) // too small
	vid := store.addVehicle(1, "AB123", 4.5, 2.0)
	svc := New(store, nil)

	res, err := svc.Create(ctx, 1, vid, "2024-01-01 10:00", "2024-01-01 12:00", nil)
	require.NoError(t, err)
	assert.True(t, res.SlotCreated)
	assert.Equal(t, "A4", res.SlotCode, "code continues after highest existing suffix")

	created := store.slots[res.Reservation.SlotID]
	assert.InDelta(t, 5.0, created.LengthM, 1e-9)
	assert.InDelta(t, 2.3, created.WidthM, 1e-9)
	assert.Equal(t, model.DefaultAreaID, created.AreaID)
	assert.Equal(t, model.SlotReserved, created.Status, "synthesized slot ends up claimed")
}

func TestCreateGrowthDisabled(t *testing.T) {
	store := newFakeStore()
	vid := store.addVehicle(1, "AB123", 4.5, 2.0)
	svc := New(store, nil)
	svc.AllowGrowth = false

	_, err := svc.Create(ctx, 1, vid, "2024-01-01 10:00", "2024-01-01 12:00", nil)
	assert.ErrorIs(t, err, ErrNoSlotAvailable)
	assert.Empty(t, store.reservations)
}

func TestCreateRespectsAreaFilter(t *testing.T) {
	store := newFakeStore()
	other := store.addSlot("B1", 6.0, 3.0, model.SlotAvailable)
	store.slots[other].AreaID = 2
	vid := store.addVehicle(1, "AB123", 4.5, 2.0)
	svc := New(store, nil)

	area := uint64(1)
	res, err := svc.Create(ctx, 1, vid, "2024-01-01 10:00", "2024-01-01 12:00", &area)
	require.NoError(t, err)
	// The only fitting slot sits in area 2, so the facility grows.
	assert.True(t, res.SlotCreated)
	assert.Equal(t, model.SlotAvailable, store.slots[other].Status, "slot outside the filter untouched")
}

func TestSweepIdempotent(t *testing.T) {
	store := newFakeStore()
	sid := store.addSlot("A1", 5.0, 2.5, model.SlotReserved)
	store.reservations[1] = &model.Reservation{
		ID: 1, UserID: 1, VehicleID: 1, SlotID: sid,
		StartTime: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Status:    model.ReservationActive,
	}
	store.nextResID = 1
	svc := New(store, nil)
	fixedNow(svc, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))

	require.NoError(t, svc.Sweep(ctx))
	assert.Equal(t, model.ReservationCompleted, store.reservations[1].Status)
	assert.Equal(t, model.SlotAvailable, store.slots[sid].Status)

	// Running the sweep again changes nothing.
	require.NoError(t, svc.Sweep(ctx))
	assert.Equal(t, model.ReservationCompleted, store.reservations[1].Status)
	assert.Equal(t, model.SlotAvailable, store.slots[sid].Status)
}

func TestSweepSkipsFutureAndLeavesOccupied(t *testing.T) {
	store := newFakeStore()
	future := store.addSlot("A1", 5.0, 2.5, model.SlotReserved)
	occupied := store.addSlot("A2", 5.0, 2.5, model.SlotOccupied)
	store.reservations[1] = &model.Reservation{
		ID: 1, SlotID: future,
		EndTime: time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		Status:  model.ReservationActive,
	}
	store.reservations[2] = &model.Reservation{
		ID: 2, SlotID: occupied,
		EndTime: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Status:  model.ReservationActive,
	}
	store.nextResID = 2
	svc := New(store, nil)
	fixedNow(svc, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	require.NoError(t, svc.Sweep(ctx))
	assert.Equal(t, model.ReservationActive, store.reservations[1].Status, "future reservation untouched")
	assert.Equal(t, model.SlotReserved, store.slots[future].Status)
	assert.Equal(t, model.ReservationCompleted, store.reservations[2].Status)
	assert.Equal(t, model.SlotOccupied, store.slots[occupied].Status, "occupied slot is not freed")
}

func TestCancelRoundTrip(t *testing.T) {
	store := newFakeStore()
	bystander := store.addSlot("A9", 9.0, 3.0, model.SlotAvailable)
	store.addSlot("A1", 5.0, 2.5, model.SlotAvailable)
	vid := store.addVehicle(1, "AB123", 4.5, 2.0)
	notifier := &recordingNotifier{}
	svc := New(store, notifier)

	res, err := svc.Create(ctx, 1, vid, "2030-01-01 10:00", "2030-01-01 12:00", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, res.Reservation.ID, 1))

	assert.Equal(t, model.ReservationCancelled, store.reservations[res.Reservation.ID].Status)
	assert.Equal(t, model.SlotAvailable, store.slots[res.Reservation.SlotID].Status)
	assert.Equal(t, model.SlotAvailable, store.slots[bystander].Status, "unrelated slot untouched")
	assert.Len(t, store.reservations, 1, "no extra reservation rows")

	require.Len(t, notifier.events, 2)
	assert.Equal(t, "Reservation Successful", notifier.events[0].Message)
	assert.Equal(t, "Reservation Cancelled", notifier.events[1].Message)
}

func TestCancelNonActiveConflicts(t *testing.T) {
	store := newFakeStore()
	sid := store.addSlot("A1", 5.0, 2.5, model.SlotAvailable)
	store.reservations[1] = &model.Reservation{ID: 1, SlotID: sid, Status: model.ReservationCancelled,
		EndTime: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)}
	store.reservations[2] = &model.Reservation{ID: 2, SlotID: sid, Status: model.ReservationCompleted,
		EndTime: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)}
	store.nextResID = 2
	svc := New(store, nil)

	assert.ErrorIs(t, svc.Cancel(ctx, 1, 0), ErrNotActive)
	assert.ErrorIs(t, svc.Cancel(ctx, 2, 0), ErrNotActive)
	assert.ErrorIs(t, svc.Cancel(ctx, 99, 0), ErrReservationNotFound)
	assert.Equal(t, model.ReservationCancelled, store.reservations[1].Status)
	assert.Equal(t, model.ReservationCompleted, store.reservations[2].Status)
	assert.Equal(t, model.SlotAvailable, store.slots[sid].Status)
}

func TestCancelScopedToOwner(t *testing.T) {
	store := newFakeStore()
	store.addSlot("A1", 5.0, 2.5, model.SlotAvailable)
	vid := store.addVehicle(1, "AB123", 4.5, 2.0)
	svc := New(store, nil)

	res, err := svc.Create(ctx, 1, vid, "2030-01-01 10:00", "2030-01-01 12:00", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Cancel(ctx, res.Reservation.ID, 2), ErrReservationNotFound,
		"another user's reservation looks nonexistent")
	assert.ErrorIs(t, svc.Delete(ctx, res.Reservation.ID, 2), ErrReservationNotFound)
	assert.Equal(t, model.ReservationActive, store.reservations[res.Reservation.ID].Status)

	require.NoError(t, svc.Cancel(ctx, res.Reservation.ID, 1))
}

func TestCancelLeavesOccupiedSlot(t *testing.T) {
	store := newFakeStore()
	sid := store.addSlot("A1", 5.0, 2.5, model.SlotOccupied)
	store.reservations[1] = &model.Reservation{ID: 1, SlotID: sid, Status: model.ReservationActive,
		EndTime: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)}
	store.nextResID = 1
	svc := New(store, nil)

	require.NoError(t, svc.Cancel(ctx, 1, 0))
	assert.Equal(t, model.SlotOccupied, store.slots[sid].Status)
}

func TestDeleteFreesActiveSlot(t *testing.T) {
	store := newFakeStore()
	sid := store.addSlot("A1", 5.0, 2.5, model.SlotReserved)
	store.reservations[1] = &model.Reservation{ID: 1, SlotID: sid, Status: model.ReservationActive,
		EndTime: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)}
	store.nextResID = 1
	svc := New(store, nil)

	require.NoError(t, svc.Delete(ctx, 1, 0))
	assert.NotContains(t, store.reservations, uint64(1))
	assert.Equal(t, model.SlotAvailable, store.slots[sid].Status)

	assert.ErrorIs(t, svc.Delete(ctx, 1, 0), ErrReservationNotFound)
}

func TestDeleteKeepsSlotForTerminalReservation(t *testing.T) {
	store := newFakeStore()
	sid := store.addSlot("A1", 5.0, 2.5, model.SlotReserved)
	store.reservations[1] = &model.Reservation{ID: 1, SlotID: sid, Status: model.ReservationCancelled,
		EndTime: time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)}
	store.nextResID = 1
	svc := New(store, nil)

	require.NoError(t, svc.Delete(ctx, 1, 0))
	assert.Equal(t, model.SlotReserved, store.slots[sid].Status, "non-active deletion leaves slot alone")
}

func TestListForUserOrderAndFilter(t *testing.T) {
	store := newFakeStore()
	sid := store.addSlot("A1", 5.0, 2.5, model.SlotReserved)
	end := time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)
	store.reservations[1] = &model.Reservation{ID: 1, UserID: 1, SlotID: sid, Status: model.ReservationCancelled, EndTime: end}
	store.reservations[2] = &model.Reservation{ID: 2, UserID: 1, SlotID: sid, Status: model.ReservationActive, EndTime: end}
	store.reservations[3] = &model.Reservation{ID: 3, UserID: 2, SlotID: sid, Status: model.ReservationActive, EndTime: end}
	store.nextResID = 3
	svc := New(store, nil)

	all, err := svc.ListForUser(ctx, 1, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, uint64(2), all[0].ID, "newest id first")
	assert.Equal(t, uint64(1), all[1].ID)

	active, err := svc.ListForUser(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, uint64(2), active[0].ID)
}
