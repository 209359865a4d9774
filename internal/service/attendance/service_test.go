package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/attendance"
	"github.com/presensia/attendance-backend-go/internal/domain/qrtoken"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
	"github.com/presensia/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo is an in-memory AttendanceRepository keyed on
// (user_id, date), mirroring the store's unique constraint.
type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func (f *fakeAttendanceRepo) key(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, att attendance.Attendance) (attendance.Attendance, bool, error) {
	k := f.key(att.UserID, att.Date)
	if existing, ok := f.records[k]; ok {
		return existing, false, nil
	}
	f.nextID++
	att.ID = fmt.Sprintf("att-%d", f.nextID)
	f.records[k] = att
	return att, true, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	for _, rec := range f.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	if rec, ok := f.records[f.key(userID, date)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	for k, rec := range f.records {
		if rec.ID == att.ID {
			f.records[k] = att
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if filter.UserID != nil && rec.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && rec.Status != *filter.Status {
			continue
		}
		if filter.StartDate != nil && rec.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && rec.Date.After(*filter.EndDate) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListOpenForDate(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, rec := range f.records {
		if rec.Date.Equal(date) && rec.Status == attendance.StatusCheckedIn && rec.CheckOut == nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	for k, rec := range f.records {
		if rec.ID == id {
			delete(f.records, k)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

// fakeTokenService accepts one token value and rejects everything else.
type fakeTokenService struct {
	valid string
}

func (f *fakeTokenService) Current(ctx context.Context, monthYear string) (qrtoken.TokenResponse, error) {
	return qrtoken.TokenResponse{}, qrtoken.ErrTokenNotFound
}

func (f *fakeTokenService) Issue(ctx context.Context, monthYear, actorID string) (qrtoken.TokenResponse, error) {
	return qrtoken.TokenResponse{}, nil
}

func (f *fakeTokenService) Verify(ctx context.Context, value string) (qrtoken.Token, error) {
	if value == f.valid {
		return qrtoken.Token{Token: value, IsActive: true}, nil
	}
	return qrtoken.Token{}, qrtoken.ErrInvalidOrExpiredToken
}

func newTestService(now time.Time) (attendance.AttendanceService, *fakeAttendanceRepo) {
	repo := newFakeAttendanceRepo()
	clk := clock.Fixed(now)
	guard := NewTimeWindowGuard(8, 20, clk)
	svc := NewAttendanceService(repo, &fakeTokenService{valid: "good-token"}, guard, clk)
	return svc, repo
}

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 10, hour, minute, 0, 0, time.Local)
}

func TestCheckIn_Success(t *testing.T) {
	svc, _ := newTestService(at(9, 0))

	resp, err := svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{Token: "good-token"})
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCheckedIn, resp.Status)
	assert.Equal(t, "2026-03-10", resp.Date)
	require.NotNil(t, resp.CheckIn)
	assert.Equal(t, "2026-03-10 09:00:00", *resp.CheckIn)
}

func TestCheckIn_InvalidToken(t *testing.T) {
	svc, _ := newTestService(at(9, 0))

	_, err := svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{Token: "stale-token"})
	assert.ErrorIs(t, err, qrtoken.ErrInvalidOrExpiredToken)
}

func TestCheckIn_OutsideWindow(t *testing.T) {
	svc, _ := newTestService(at(7, 30))

	_, err := svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{Token: "good-token"})
	assert.ErrorIs(t, err, attendance.ErrOutsideTimeWindow)
}

func TestCheckIn_Twice(t *testing.T) {
	svc, _ := newTestService(at(9, 0))

	_, err := svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{Token: "good-token"})
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "user-1", attendance.CheckInRequest{Token: "good-token"})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_ComputesRoundedHours(t *testing.T) {
	ctx := context.Background()
	morning, repo := newTestService(at(9, 0))

	_, err := morning.CheckIn(ctx, "user-1", attendance.CheckInRequest{Token: "good-token"})
	require.NoError(t, err)

	// Same store, clock moved to 17:30
	clk := clock.Fixed(at(17, 30))
	evening := NewAttendanceService(repo, &fakeTokenService{valid: "good-token"}, NewTimeWindowGuard(8, 20, clk), clk)

	resp, err := evening.CheckOut(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCheckedOut, resp.Status)
	assert.Equal(t, 8.5, resp.HoursWorked)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	svc, _ := newTestService(at(9, 0))

	_, err := svc.CheckOut(context.Background(), "user-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_AfterComplete(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(at(9, 0))

	_, err := svc.CheckIn(ctx, "user-1", attendance.CheckInRequest{Token: "good-token"})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, "user-1")
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx, "user-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestGetTodayAttendance_AbsentAndPresent(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(at(9, 0))

	before, err := svc.GetTodayAttendance(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, before.Present)
	assert.True(t, before.CanCheckIn)
	assert.False(t, before.CanCheckOut)

	_, err = svc.CheckIn(ctx, "user-1", attendance.CheckInRequest{Token: "good-token"})
	require.NoError(t, err)

	after, err := svc.GetTodayAttendance(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, after.Present)
	assert.True(t, after.CanCheckOut)
	require.NotNil(t, after.Attendance)
	assert.Equal(t, attendance.StatusCheckedIn, after.Attendance.Status)
}

func TestGetOrCreateTodayAttendance_UpsertsPlaceholderOnce(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(at(9, 0))

	first, err := svc.GetOrCreateTodayAttendance(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, first.Present)
	assert.True(t, first.CanCheckIn)
	require.NotNil(t, first.Attendance)
	assert.Equal(t, attendance.StatusNotCheckedIn, first.Attendance.Status)

	// Second call lands on the same row
	second, err := svc.GetOrCreateTodayAttendance(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, second.Attendance)
	assert.Equal(t, first.Attendance.ID, second.Attendance.ID)
	assert.Len(t, repo.records, 1)

	// The placeholder does not block a later self-service check-in
	checked, err := svc.CheckIn(ctx, "user-1", attendance.CheckInRequest{Token: "good-token"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedIn, checked.Status)
	assert.Equal(t, first.Attendance.ID, checked.ID)
}

func TestAdminCheckInOut_BypassesWindow(t *testing.T) {
	// 22:00 is outside the self-service window
	svc, _ := newTestService(at(22, 0))

	resp, err := svc.AdminCheckInOut(context.Background(), attendance.AdminActionRequest{
		UserID: "user-1",
		Action: attendance.ActionCheckIn,
	}, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCheckedIn, resp.Status)
	require.NotNil(t, resp.EditedBy)
	assert.Equal(t, "admin-1", *resp.EditedBy)
}

func TestAdminCheckInOut_BackfillsChosenDate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(at(10, 15))
	target := "2026-03-02"

	in, err := svc.AdminCheckInOut(ctx, attendance.AdminActionRequest{
		UserID: "user-1",
		Action: attendance.ActionCheckIn,
		Date:   &target,
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", in.Date)
	require.NotNil(t, in.CheckIn)
	assert.Equal(t, "2026-03-02 10:15:00", *in.CheckIn)

	out, err := svc.AdminCheckInOut(ctx, attendance.AdminActionRequest{
		UserID: "user-1",
		Action: attendance.ActionCheckOut,
		Date:   &target,
	}, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusCheckedOut, out.Status)
	assert.Equal(t, 0.0, out.HoursWorked)
}

func TestCreateManualEntry_DefaultsAndHours(t *testing.T) {
	svc, _ := newTestService(at(9, 0))
	checkIn := "2026-03-02 09:00:00"
	checkOut := "2026-03-02 17:30:00"

	resp, err := svc.CreateManualEntry(context.Background(), attendance.ManualEntryRequest{
		UserID:   "user-1",
		Date:     "2026-03-02",
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	}, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCheckedOut, resp.Status)
	assert.Equal(t, 8.5, resp.HoursWorked)
	require.NotNil(t, resp.EditedBy)
	assert.Equal(t, "admin-1", *resp.EditedBy)
}

func TestCreateManualEntry_Duplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(at(9, 0))

	req := attendance.ManualEntryRequest{UserID: "user-1", Date: "2026-03-02"}
	_, err := svc.CreateManualEntry(ctx, req, "admin-1")
	require.NoError(t, err)

	_, err = svc.CreateManualEntry(ctx, req, "admin-1")
	assert.ErrorIs(t, err, attendance.ErrDuplicateAttendance)
}

func TestAdminEdit_RecomputesAndClears(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(at(9, 0))

	created, err := svc.CreateManualEntry(ctx, attendance.ManualEntryRequest{
		UserID: "user-1",
		Date:   "2026-03-02",
	}, "admin-1")
	require.NoError(t, err)

	checkIn := "2026-03-02 08:00:00"
	checkOut := "2026-03-02 16:00:00"
	edited, err := svc.AdminEdit(ctx, attendance.AdminEditRequest{
		ID:       created.ID,
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	}, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, 8.0, edited.HoursWorked)
	require.NotNil(t, edited.EditedBy)
	assert.Equal(t, "admin-2", *edited.EditedBy)

	// Clearing one end zeroes the hours
	clear := ""
	reopened, err := svc.AdminEdit(ctx, attendance.AdminEditRequest{
		ID:       created.ID,
		CheckOut: &clear,
	}, "admin-2")
	require.NoError(t, err)
	assert.Nil(t, reopened.CheckOut)
	assert.Equal(t, 0.0, reopened.HoursWorked)
}

func TestCreateManualEntry_RejectsInvertedTimes(t *testing.T) {
	svc, _ := newTestService(at(9, 0))
	checkIn := "2026-03-02 17:00:00"
	checkOut := "2026-03-02 09:00:00"

	_, err := svc.CreateManualEntry(context.Background(), attendance.ManualEntryRequest{
		UserID:   "user-1",
		Date:     "2026-03-02",
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	}, "admin-1")

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, "check_out", errs[0].Field)
}

func TestAdminEdit_RejectsInvertedTimes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(at(9, 0))

	created, err := svc.CreateManualEntry(ctx, attendance.ManualEntryRequest{
		UserID: "user-1",
		Date:   "2026-03-02",
	}, "admin-1")
	require.NoError(t, err)

	checkIn := "2026-03-02 16:00:00"
	checkOut := "2026-03-02 08:00:00"
	_, err = svc.AdminEdit(ctx, attendance.AdminEditRequest{
		ID:       created.ID,
		CheckIn:  &checkIn,
		CheckOut: &checkOut,
	}, "admin-1")

	var errs validator.ValidationErrors
	assert.ErrorAs(t, err, &errs)
}

func TestAdminEdit_NotFound(t *testing.T) {
	svc, _ := newTestService(at(9, 0))

	_, err := svc.AdminEdit(context.Background(), attendance.AdminEditRequest{ID: "missing"}, "admin-1")
	assert.ErrorIs(t, err, attendance.ErrAttendanceNotFound)
}

func TestAutoCheckoutForgotten_SweepsAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(at(9, 0))

	_, err := svc.CheckIn(ctx, "user-1", attendance.CheckInRequest{Token: "good-token"})
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, "user-2", attendance.CheckInRequest{Token: "good-token"})
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, "user-2")
	require.NoError(t, err)

	result, err := svc.AutoCheckoutForgotten(ctx, at(23, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Swept)
	assert.Equal(t, 0, result.Skipped)

	// The swept record is closed without a checkout timestamp
	swept, err := repo.GetByUserAndDate(ctx, "user-1", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.Local))
	require.NoError(t, err)
	require.NotNil(t, swept)
	assert.Equal(t, attendance.StatusCheckedOut, swept.Status)
	assert.Nil(t, swept.CheckOut)
	assert.Equal(t, 0.0, swept.HoursWorked)

	// Second run finds nothing open
	again, err := svc.AutoCheckoutForgotten(ctx, at(23, 30))
	require.NoError(t, err)
	assert.Equal(t, 0, again.Swept)
}
