package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/presensia/attendance-backend-go/internal/domain/calendar"
)

type CalendarServiceImpl struct {
	workingDaysRepo     calendar.WorkingDaysRepository
	userWorkingDaysRepo calendar.UserWorkingDaysRepository
}

func NewCalendarService(
	workingDaysRepo calendar.WorkingDaysRepository,
	userWorkingDaysRepo calendar.UserWorkingDaysRepository,
) calendar.CalendarService {
	return &CalendarServiceImpl{
		workingDaysRepo:     workingDaysRepo,
		userWorkingDaysRepo: userWorkingDaysRepo,
	}
}

// globalConfigForMonth returns the stored config, or a synthesized one when
// the month has never been edited.
func (s *CalendarServiceImpl) globalConfigForMonth(ctx context.Context, year, month int) (calendar.WorkingDaysConfig, bool, error) {
	stored, err := s.workingDaysRepo.GetByMonth(ctx, year, month)
	if err != nil {
		return calendar.WorkingDaysConfig{}, false, fmt.Errorf("failed to get working days config: %w", err)
	}
	if stored != nil {
		return *stored, true, nil
	}
	return SynthesizeMonth(year, month), false, nil
}

// IsWorkingDay implements calendar.CalendarService.
func (s *CalendarServiceImpl) IsWorkingDay(ctx context.Context, date time.Time, userID string) (bool, error) {
	year, month := date.Year(), int(date.Month())

	userCfg, err := s.userWorkingDaysRepo.GetByUserAndMonth(ctx, userID, year, month)
	if err != nil {
		return false, fmt.Errorf("failed to get user working days config: %w", err)
	}

	globalCfg, _, err := s.globalConfigForMonth(ctx, year, month)
	if err != nil {
		return false, err
	}

	return ResolveWorkingDay(date, userCfg, &globalCfg), nil
}

// DailyHours implements calendar.CalendarService.
func (s *CalendarServiceImpl) DailyHours(ctx context.Context, userID string, year, month int) (float64, error) {
	userCfg, err := s.userWorkingDaysRepo.GetByUserAndMonth(ctx, userID, year, month)
	if err != nil {
		return 0, fmt.Errorf("failed to get user working days config: %w", err)
	}
	return ResolveDailyHours(userCfg), nil
}

// GetWorkingDaysForMonth implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetWorkingDaysForMonth(ctx context.Context, year, month int) (calendar.WorkingDaysResponse, error) {
	if errs := validateYearMonth(year, month); errs != nil {
		return calendar.WorkingDaysResponse{}, errs
	}

	cfg, persisted, err := s.globalConfigForMonth(ctx, year, month)
	if err != nil {
		return calendar.WorkingDaysResponse{}, err
	}

	return calendar.WorkingDaysResponse{
		Year:            cfg.Year,
		Month:           cfg.Month,
		Days:            cfg.Days,
		DefaultWeekdays: cfg.DefaultWeekdays,
		Persisted:       persisted,
	}, nil
}

// UpdateWorkingDays implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpdateWorkingDays(ctx context.Context, req calendar.UpdateWorkingDaysRequest) (calendar.WorkingDaysResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.WorkingDaysResponse{}, err
	}

	saved, err := s.workingDaysRepo.Upsert(ctx, calendar.WorkingDaysConfig{
		Year:            req.Year,
		Month:           req.Month,
		Days:            req.Days,
		DefaultWeekdays: req.DefaultWeekdays,
	})
	if err != nil {
		return calendar.WorkingDaysResponse{}, fmt.Errorf("failed to update working days config: %w", err)
	}

	return calendar.WorkingDaysResponse{
		Year:            saved.Year,
		Month:           saved.Month,
		Days:            saved.Days,
		DefaultWeekdays: saved.DefaultWeekdays,
		Persisted:       true,
	}, nil
}

// ResetToDefault implements calendar.CalendarService. Resetting a month that
// was never edited is a no-op.
func (s *CalendarServiceImpl) ResetToDefault(ctx context.Context, year, month int) error {
	if errs := validateYearMonth(year, month); errs != nil {
		return errs
	}

	if err := s.workingDaysRepo.Delete(ctx, year, month); err != nil {
		if errors.Is(err, calendar.ErrConfigNotFound) {
			return nil
		}
		return fmt.Errorf("failed to reset working days config: %w", err)
	}

	return nil
}

// GetUserWorkingDays implements calendar.CalendarService.
func (s *CalendarServiceImpl) GetUserWorkingDays(ctx context.Context, userID string, year, month int) (calendar.UserWorkingDaysResponse, error) {
	if errs := validateYearMonth(year, month); errs != nil {
		return calendar.UserWorkingDaysResponse{}, errs
	}

	userCfg, err := s.userWorkingDaysRepo.GetByUserAndMonth(ctx, userID, year, month)
	if err != nil {
		return calendar.UserWorkingDaysResponse{}, fmt.Errorf("failed to get user working days config: %w", err)
	}

	if userCfg != nil {
		return calendar.UserWorkingDaysResponse{
			UserID:          userCfg.UserID,
			Year:            userCfg.Year,
			Month:           userCfg.Month,
			Days:            userCfg.Days,
			DefaultWeekdays: userCfg.DefaultWeekdays,
			DailyHours:      ResolveDailyHours(userCfg),
			IsCustom:        userCfg.IsCustom,
		}, nil
	}

	// No user config: present the global view
	globalCfg, _, err := s.globalConfigForMonth(ctx, year, month)
	if err != nil {
		return calendar.UserWorkingDaysResponse{}, err
	}

	return calendar.UserWorkingDaysResponse{
		UserID:          userID,
		Year:            year,
		Month:           month,
		Days:            globalCfg.Days,
		DefaultWeekdays: globalCfg.DefaultWeekdays,
		DailyHours:      calendar.DefaultDailyHours,
		IsCustom:        false,
	}, nil
}

// UpdateUserWorkingDays implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpdateUserWorkingDays(ctx context.Context, req calendar.UpdateUserWorkingDaysRequest) (calendar.UserWorkingDaysResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.UserWorkingDaysResponse{}, err
	}

	dailyHours := calendar.DefaultDailyHours
	if req.DailyHours != nil {
		dailyHours = *req.DailyHours
	}

	saved, err := s.userWorkingDaysRepo.Upsert(ctx, calendar.UserWorkingDaysConfig{
		UserID:          req.UserID,
		Year:            req.Year,
		Month:           req.Month,
		Days:            req.Days,
		DefaultWeekdays: req.DefaultWeekdays,
		DailyHours:      dailyHours,
		IsCustom:        true,
	})
	if err != nil {
		return calendar.UserWorkingDaysResponse{}, fmt.Errorf("failed to update user working days config: %w", err)
	}

	return calendar.UserWorkingDaysResponse{
		UserID:          saved.UserID,
		Year:            saved.Year,
		Month:           saved.Month,
		Days:            saved.Days,
		DefaultWeekdays: saved.DefaultWeekdays,
		DailyHours:      saved.DailyHours,
		IsCustom:        saved.IsCustom,
	}, nil
}

// ApplyGlobalToUsers implements calendar.CalendarService. Per-user failures
// are collected; the batch never rolls back users already written.
func (s *CalendarServiceImpl) ApplyGlobalToUsers(ctx context.Context, req calendar.ApplyToUsersRequest) (calendar.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return calendar.BatchResult{}, err
	}

	globalCfg, _, err := s.globalConfigForMonth(ctx, req.Year, req.Month)
	if err != nil {
		return calendar.BatchResult{}, err
	}

	result := calendar.BatchResult{Errors: make(map[string]string)}
	for _, userID := range req.UserIDs {
		existing, err := s.userWorkingDaysRepo.GetByUserAndMonth(ctx, userID, req.Year, req.Month)
		if err != nil {
			result.Failed++
			result.Errors[userID] = err.Error()
			continue
		}

		dailyHours := calendar.DefaultDailyHours
		if existing != nil && existing.DailyHours > 0 {
			dailyHours = existing.DailyHours
		}

		_, err = s.userWorkingDaysRepo.Upsert(ctx, calendar.UserWorkingDaysConfig{
			UserID:          userID,
			Year:            req.Year,
			Month:           req.Month,
			Days:            globalCfg.Days,
			DefaultWeekdays: globalCfg.DefaultWeekdays,
			DailyHours:      dailyHours,
			IsCustom:        false,
		})
		if err != nil {
			result.Failed++
			result.Errors[userID] = err.Error()
			continue
		}
		result.Modified++
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}

// RevertToGlobal implements calendar.CalendarService.
func (s *CalendarServiceImpl) RevertToGlobal(ctx context.Context, req calendar.ApplyToUsersRequest) (calendar.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return calendar.BatchResult{}, err
	}

	result := calendar.BatchResult{Errors: make(map[string]string)}
	for _, userID := range req.UserIDs {
		if err := s.userWorkingDaysRepo.Delete(ctx, userID, req.Year, req.Month); err != nil {
			if errors.Is(err, calendar.ErrConfigNotFound) {
				// Already on the global config
				continue
			}
			result.Failed++
			result.Errors[userID] = err.Error()
			continue
		}
		result.Modified++
	}

	if len(result.Errors) == 0 {
		result.Errors = nil
	}
	return result, nil
}

func validateYearMonth(year, month int) error {
	req := calendar.UpdateWorkingDaysRequest{Year: year, Month: month}
	if err := req.Validate(); err != nil {
		return err
	}
	return nil
}
