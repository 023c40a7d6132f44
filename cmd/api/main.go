package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/timeconnect/attendance-backend-go/internal/config"
	"github.com/timeconnect/attendance-backend-go/internal/domain/attendance"
	appHTTP "github.com/timeconnect/attendance-backend-go/internal/handler/http"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/database"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/email"
	"github.com/timeconnect/attendance-backend-go/internal/pkg/jwt"
	"github.com/timeconnect/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/timeconnect/attendance-backend-go/internal/service/attendance"
	authService "github.com/timeconnect/attendance-backend-go/internal/service/auth"
	employeeService "github.com/timeconnect/attendance-backend-go/internal/service/employee"
	notificationService "github.com/timeconnect/attendance-backend-go/internal/service/notification"
	reportService "github.com/timeconnect/attendance-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	emailSender, err := email.NewEmailSender(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email sender: ", err)
	}
	dispatcher, err := notificationService.NewDispatcher(emailSender, cfg.Mail)
	if err != nil {
		log.Fatal("Failed to start notification dispatcher: ", err)
	}
	defer dispatcher.Stop()

	runInTx := func(ctx context.Context, fn func(txCtx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	policy := attendance.Policy{
		ArrivalTime:       cfg.Attendance.ArrivalTime,
		StandardWorkHours: decimal.NewFromFloat(cfg.Attendance.StandardWorkHours),
	}

	authSvc := authService.NewAuthService(employeeRepo, jwtService, dispatcher, runInTx)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, dispatcher, policy)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	reportSvc := reportService.NewReportService(reportRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authSvc,
		authHandler,
		attendanceHandler,
		employeeHandler,
		reportHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server shutdown error: ", err)
	}
}
