package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/presensia/attendance-backend-go/internal/config"
	appHTTP "github.com/presensia/attendance-backend-go/internal/handler/http"
	"github.com/presensia/attendance-backend-go/internal/pkg/clock"
	"github.com/presensia/attendance-backend-go/internal/pkg/cron"
	"github.com/presensia/attendance-backend-go/internal/pkg/database"
	"github.com/presensia/attendance-backend-go/internal/pkg/jwt"
	"github.com/presensia/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/presensia/attendance-backend-go/internal/service/attendance"
	calendarService "github.com/presensia/attendance-backend-go/internal/service/calendar"
	qrtokenService "github.com/presensia/attendance-backend-go/internal/service/qrtoken"
	reportService "github.com/presensia/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolSettings{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	workingDaysRepo := postgresql.NewWorkingDaysRepository(db)
	userWorkingDaysRepo := postgresql.NewUserWorkingDaysRepository(db)
	qrTokenRepo := postgresql.NewQRTokenRepository(db)
	leaveOverlay := postgresql.NewLeaveOverlayRepository(db)
	holidayOverlay := postgresql.NewHolidayOverlayRepository(db)

	clk := clock.System()
	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	tokenService := qrtokenService.NewTokenService(qrTokenRepo, clk)
	guard := attendanceService.NewTimeWindowGuard(cfg.Attendance.WindowStartHour, cfg.Attendance.WindowEndHour, clk)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, tokenService, guard, clk)
	calendarSvc := calendarService.NewCalendarService(workingDaysRepo, userWorkingDaysRepo)
	reportSvc := reportService.NewReportService(
		attendanceRepo,
		workingDaysRepo,
		userWorkingDaysRepo,
		leaveOverlay,
		holidayOverlay,
		clk,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, clk, cfg.Attendance.AutoCheckoutHour).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	qrTokenHandler := appHTTP.NewQRTokenHandler(tokenService, clk)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)

	router := appHTTP.NewRouter(cfg, jwtService, attendanceHandler, reportHandler, qrTokenHandler, calendarHandler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		slog.Info("Server starting", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down server...")
	if err := server.Close(); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
