package main

import (
	"fmt"
	"net/http"

	"github.com/clockwork-hq/timeclock-backend-go/internal/config"
	appHTTP "github.com/clockwork-hq/timeclock-backend-go/internal/handler/http"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/cron"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/database"
	"github.com/clockwork-hq/timeclock-backend-go/internal/pkg/jwt"
	"github.com/clockwork-hq/timeclock-backend-go/internal/repository/postgresql"
	overtimeService "github.com/clockwork-hq/timeclock-backend-go/internal/service/overtime"
	payrollTimeService "github.com/clockwork-hq/timeclock-backend-go/internal/service/payrolltime"
	timeClockService "github.com/clockwork-hq/timeclock-backend-go/internal/service/timeclock"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	entryRepo := postgresql.NewTimeEntryRepository(db)
	payPeriodRepo := postgresql.NewPayPeriodRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	calculator := overtimeService.NewCalculator()

	timeClockSvc := timeClockService.NewTimeClockService(db, entryRepo, employeeRepo, policyRepo, shiftRepo, calculator)
	payrollSvc := payrollTimeService.NewPayrollTimeService(db, payPeriodRepo, entryRepo, employeeRepo, policyRepo, calculator)

	timeClockHandler := appHTTP.NewTimeClockHandler(timeClockSvc)
	payPeriodHandler := appHTTP.NewPayPeriodHandler(payrollSvc)

	router := appHTTP.NewRouter(JWTService, timeClockHandler, payPeriodHandler)

	scheduler := cron.NewScheduler()
	cron.NewTimeClockJobs(timeClockSvc, payrollSvc, db).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
