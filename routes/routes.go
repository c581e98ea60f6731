package routes

import (
	"gymdesk_go/controllers"
	"gymdesk_go/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes
func SetupRoutes(app *fiber.App) {
	authController := &controllers.AuthController{}
	userController := &controllers.UserController{}
	memberController := &controllers.MemberController{}
	membershipController := &controllers.MembershipController{}
	memberMembershipController := controllers.NewMemberMembershipController()
	attendanceController := controllers.NewAttendanceController()
	dashboardController := &controllers.DashboardController{}
	reportController := &controllers.ReportController{}
	logController := &controllers.LogController{}

	// API group
	api := app.Group("/api")

	// Public routes (no authentication required)
	public := api.Group("/public")

	// Member self-service profile, looked up by member code only
	public.Get("/members/:code", memberController.PublicProfile)

	// Authentication routes (no middleware)
	auth := api.Group("/auth")
	auth.Post("/login", authController.Login)
	auth.Get("/profile", middleware.JWTMiddleware(), authController.GetProfile)

	// Protected routes (require authentication)
	protected := api.Group("/", middleware.JWTMiddleware())

	protected.Get("/profile", authController.GetProfile)
	protected.Put("/profile/password", authController.ChangePassword)
	protected.Post("/auth/logout", authController.Logout)
	protected.Post("/auth/register", middleware.RequireOwnerOrAdmin(), authController.Register)

	// Staff account management (owner/admin only)
	users := protected.Group("/users", middleware.RequireOwnerOrAdmin())
	users.Get("/", userController.GetUsers)
	users.Get("/:id", userController.GetUser)
	users.Put("/:id", userController.UpdateUser)
	users.Delete("/:id", userController.DeleteUser)

	// Members
	members := protected.Group("/members", middleware.RequireStaffOrAbove())
	members.Get("/", memberController.GetMembers)
	members.Get("/:id", memberController.GetMember)
	members.Post("/", memberController.CreateMember)
	members.Put("/:id", memberController.UpdateMember)
	members.Delete("/:id", middleware.RequireOwnerOrAdmin(), memberController.DeleteMember)
	members.Post("/:id/photo", memberController.UploadPhoto)

	// Membership plans
	memberships := protected.Group("/memberships", middleware.RequireStaffOrAbove())
	memberships.Get("/", membershipController.GetMemberships)
	memberships.Get("/:id", membershipController.GetMembership)
	memberships.Post("/", middleware.RequireOwnerOrAdmin(), membershipController.CreateMembership)
	memberships.Put("/:id", middleware.RequireOwnerOrAdmin(), membershipController.UpdateMembership)
	memberships.Delete("/:id", middleware.RequireOwnerOrAdmin(), membershipController.DeleteMembership)

	// Membership assignments
	assignments := protected.Group("/member-memberships", middleware.RequireStaffOrAbove())
	assignments.Get("/", memberMembershipController.GetMemberMemberships)
	assignments.Get("/:id", memberMembershipController.GetMemberMembership)
	assignments.Post("/", memberMembershipController.AssignMembership)
	assignments.Post("/:id/cancel", memberMembershipController.CancelMemberMembership)
	assignments.Delete("/:id", middleware.RequireOwnerOrAdmin(), memberMembershipController.DeleteMemberMembership)
	assignments.Get("/:id/remaining", memberMembershipController.GetRemainingQty)
	assignments.Get("/:id/can-check-in", memberMembershipController.GetCanCheckIn)

	// Attendances
	attendances := protected.Group("/attendances", middleware.RequireStaffOrAbove())
	attendances.Get("/", attendanceController.GetAttendances)
	attendances.Get("/today", attendanceController.GetToday)
	attendances.Get("/:id", attendanceController.GetAttendance)
	attendances.Post("/check-in", attendanceController.CheckIn)
	attendances.Post("/:id/check-out", attendanceController.CheckOut)
	attendances.Delete("/:id", middleware.RequireOwnerOrAdmin(), attendanceController.DeleteAttendance)

	// Dashboard
	protected.Get("/dashboard/stats", middleware.RequireStaffOrAbove(), dashboardController.GetStats)

	// Reports (owner/admin only)
	reports := protected.Group("/reports", middleware.RequireOwnerOrAdmin())
	reports.Get("/attendances/export", reportController.ExportAttendances)

	// Activity logs (owner only)
	logs := protected.Group("/logs", middleware.RequireOwner())
	logs.Get("/", logController.GetLogs)
	logs.Get("/stats", logController.GetLogStats)
	logs.Get("/archives", logController.GetLogArchives)
}
