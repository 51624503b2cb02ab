package app

import (
	"database/sql"

	"hrconsole/internal/auth"
	"hrconsole/internal/company"
	"hrconsole/internal/dashboard"
	"hrconsole/internal/department"
	"hrconsole/internal/employee"
	"hrconsole/internal/leave"
	"hrconsole/internal/leavebalance"
	"hrconsole/internal/leavetype"
	"hrconsole/internal/messaging/kafka"
	"hrconsole/internal/middleware"
	"hrconsole/internal/position"
	"hrconsole/internal/rbac"
	"hrconsole/internal/rbac/infra"
	"hrconsole/internal/shared/counter"
	"hrconsole/internal/workday"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	router.Use(middleware.RequestID())

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	positionRepo := position.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	holidayRepo := workday.NewHolidayRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	dashboardRepo := dashboard.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	authService := auth.NewService(authRepo, rbacService)
	companyService := company.NewService(db, companyRepo)
	departmentService := department.NewService(db, departmentRepo)
	positionService := position.NewService(db, positionRepo)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb)
	leaveTypeService := leavetype.NewService(db, leaveTypeRepo, rdb)
	workdayService := workday.NewService(db, holidayRepo)
	balanceService := leavebalance.NewService(db, balanceRepo, leaveTypeRepo)
	leaveService := leave.NewService(db, leaveRepo, leaveTypeRepo, balanceRepo, workdayService, counterRepo, outboxRepo)
	dashboardService := dashboard.NewService(dashboardRepo, rdb)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	departmentHandler := department.NewHandler(departmentService)
	positionHandler := position.NewHandler(positionService)
	employeeHandler := employee.NewHandler(employeeService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	workdayHandler := workday.NewHandler(workdayService)
	balanceHandler := leavebalance.NewHandler(balanceService)
	leaveHandler := leave.NewHandler(leaveService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		company.RegisterRoutes(api, companyHandler, rbacService)
		department.RegisterRoutes(api, departmentHandler, rbacService)
		position.RegisterRoutes(api, positionHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		workday.RegisterRoutes(api, workdayHandler, rbacService)
		leavebalance.RegisterRoutes(api, balanceHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService)
	}

	return nil
}
