package router

import (
	"hrm/backend/foundation/web"
	"hrm/backend/internal/auth"
	"hrm/backend/internal/middleware"
	"hrm/backend/internal/pkg/config"
	"hrm/backend/internal/pkg/repository/postgresql"

	"hrm/backend/internal/repository/postgres/attendance"
	"hrm/backend/internal/repository/postgres/user"

	attendance_controller "hrm/backend/internal/controller/http/v1/attendance"
	auth_controller "hrm/backend/internal/controller/http/v1/auth"
	report_controller "hrm/backend/internal/controller/http/v1/report"
	user_controller "hrm/backend/internal/controller/http/v1/user"

	"github.com/redis/go-redis/v9"
)

type Router struct {
	*web.App
	postgresDB *postgresql.Database
	redisDB    *redis.Client
	auth       *auth.Auth
	cfg        *config.Config
}

func NewRouter(
	app *web.App,
	postgresDB *postgresql.Database,
	redisDB *redis.Client,
	auth *auth.Auth,
	cfg *config.Config,
) *Router {
	return &Router{
		app,
		postgresDB,
		redisDB,
		auth,
		cfg,
	}
}

func (r Router) Init() error {
	r.HandleMethodNotAllowed = true
	r.Use(middleware.CorsMiddleware())

	// - postgresql
	userPostgres := user.NewRepository(r.postgresDB)
	attendancePostgres := attendance.NewRepository(r.postgresDB, r.redisDB, r.cfg.OvertimeThresholdMinutes)

	// controller
	authController := auth_controller.NewController(userPostgres, r.auth)
	userController := user_controller.NewController(userPostgres, r.cfg.BaseUrl)
	attendanceController := attendance_controller.NewController(attendancePostgres)
	reportController := report_controller.NewController(attendancePostgres)

	// #auth
	r.Post("/api/v1/sign-up", authController.SignUp)
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/refresh-token", authController.RefreshToken)

	// #attendance
	r.Post("/api/v1/attendance/check-in", attendanceController.CheckIn, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/check-out", attendanceController.CheckOut, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/summary", attendanceController.DailySummary, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/history", attendanceController.GetHistory, middleware.Authenticate(r.auth))
	r.Get("/api/v1/attendance/list", attendanceController.GetList, middleware.Authenticate(r.auth, auth.RoleAdmin, auth.RoleManager))
	r.Get("/api/v1/attendance/:id", attendanceController.GetDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/attendance/:id", attendanceController.Delete, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #user
	r.Get("/api/v1/user/list", userController.GetUserList, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/:id", userController.GetUserDetailById, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/user/:id/qrcode", userController.GetQrCodeByUserId, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Delete("/api/v1/user/:id", userController.DeleteUser, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #report
	r.Get("/api/v1/report/excel", reportController.ExportExcel, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Get("/api/v1/report/pdf", reportController.ExportPDF, middleware.Authenticate(r.auth, auth.RoleAdmin))

	return r.Run(r.cfg.ServerPort)
}
