package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/staffdesk/hr-backoffice/internal/config"
	appHTTP "github.com/staffdesk/hr-backoffice/internal/handler/http"
	"github.com/staffdesk/hr-backoffice/internal/pkg/cron"
	"github.com/staffdesk/hr-backoffice/internal/pkg/database"
	"github.com/staffdesk/hr-backoffice/internal/pkg/holidayapi"
	"github.com/staffdesk/hr-backoffice/internal/pkg/jwt"
	"github.com/staffdesk/hr-backoffice/internal/repository/postgresql"
	attendanceService "github.com/staffdesk/hr-backoffice/internal/service/attendance"
	calendarService "github.com/staffdesk/hr-backoffice/internal/service/calendar"
	employeeService "github.com/staffdesk/hr-backoffice/internal/service/employee"
	leaveService "github.com/staffdesk/hr-backoffice/internal/service/leave"
	notificationService "github.com/staffdesk/hr-backoffice/internal/service/notification"
	payrollService "github.com/staffdesk/hr-backoffice/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	holidayRepo := postgresql.NewHolidayRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	salaryRuleRepo := postgresql.NewSalaryRuleRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	holidayFeed := holidayapi.NewClient(cfg.HolidayFeed)
	sink := notificationService.NewStoreSink(notificationRepo)

	calendarSvc := calendarService.NewCalendarService(holidayRepo, scheduleRepo, holidayFeed, sink)
	attendanceSvc := attendanceService.NewAttendanceService(
		attendanceRepo,
		employeeRepo,
		leaveRepo,
		holidayRepo,
		calendarSvc,
		sink,
		attendanceService.ShiftFromConfig(cfg.Shift),
		cfg.Sweep.AutoClockOutTime,
	)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		salaryRuleRepo,
		payrollRepo,
		employeeRepo,
		attendanceRepo,
		leaveRepo,
		calendarSvc,
		sink,
		cfg.Shift.Hours*60,
		cfg.Payroll.LateBasisFullRate,
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, salaryRuleRepo)

	authHandler := appHTTP.NewAuthHandler(employeeRepo, jwtService)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notificationRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, cfg.Sweep.Interval).RegisterJobs(scheduler)
	cron.NewCalendarJobs(calendarSvc, cfg.Sweep.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		jwtService,
		authHandler,
		calendarHandler,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
		employeeHandler,
		notificationHandler,
	)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
