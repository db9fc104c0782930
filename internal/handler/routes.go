package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/phlebotomy-portal/internal/middleware"
	"github.com/noah-isme/phlebotomy-portal/internal/models"
)

type sessionResolver interface {
	Resolve(ctx context.Context, id string) (*models.Session, error)
}

// Router mounts every portal route on a gin engine.
type Router struct {
	Sessions   sessionResolver
	CookieName string
	Logger     *zap.Logger

	Auth          *AuthHandler
	Account       *AccountHandler
	Dashboard     *DashboardHandler
	Notifications *NotificationHandler
	Billing       *BillingHandler
	Directory     *DirectoryHandler
	Intake        *IntakeHandler
	Health        *HealthHandler

	AdminAppointments    *AppointmentListHandler
	AdminArchive         *AppointmentListHandler
	EmployeeAppointments *AppointmentListHandler
	EmployeeArchive      *AppointmentListHandler
	EmployeeToday        *AppointmentListHandler
}

// Register installs the routes.
func (rt *Router) Register(r *gin.Engine) {
	audit := func(action string) gin.HandlerFunc {
		return middleware.Audit(rt.Logger, action)
	}

	r.GET("/health", rt.Health.Health)
	r.GET("/ready", rt.Health.Ready)
	r.GET("/metrics", rt.Health.Prometheus)

	optional := middleware.OptionalSession(rt.Sessions, rt.CookieName)
	r.NoRoute(optional, rt.Auth.NotFound)

	public := r.Group("/", optional)
	public.GET("", rt.Auth.Root)
	public.GET("/signin", rt.Auth.SignInPage)
	public.POST("/signin", rt.Auth.SignIn)
	public.POST("/signout", rt.Auth.SignOut)
	public.GET("/not-found", rt.Auth.NotFound)

	authed := r.Group("/", middleware.Session(rt.Sessions, rt.CookieName))
	authed.GET("/notifications", rt.Notifications.List)
	authed.POST("/notifications/clear", audit("notifications.clear"), rt.Notifications.DeleteAll)
	authed.GET("/account", rt.Account.Account)
	authed.POST("/account/profile", audit("account.profile"), rt.Account.UpdateProfile)
	authed.POST("/account/notifications/toggle", audit("account.notifications"), rt.Account.ToggleNotifications)
	authed.POST("/account/status/toggle", audit("account.status"), rt.Account.ToggleAccount)
	authed.GET("/account/password", rt.Account.PasswordPage)
	authed.POST("/account/password", audit("account.password"), rt.Account.ChangePassword)

	admin := authed.Group("/admin", middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/dashboard", rt.Dashboard.Admin)
	admin.GET("/appointments/new", rt.Intake.NewAppointmentPage)
	admin.POST("/appointments/new", audit("appointment.create"), rt.Intake.CreateAppointment)
	rt.AdminAppointments.Register(admin.Group("/appointments"), audit)
	rt.AdminArchive.Register(admin.Group("/archive"), audit)
	admin.GET("/employees", rt.Directory.Employees)
	admin.GET("/employees/new", rt.Intake.NewEmployeePage)
	admin.POST("/employees/new", audit("employee.create"), rt.Intake.AddEmployee)
	admin.POST("/employees/:id/delete", audit("employee.delete"), rt.Directory.DeleteEmployee)
	admin.GET("/laboratories", rt.Directory.Laboratories)
	admin.GET("/laboratories/new", rt.Intake.NewLaboratoryPage)
	admin.POST("/laboratories/new", audit("laboratory.create"), rt.Intake.AddLaboratory)
	admin.POST("/laboratories/:id/delete", audit("laboratory.delete"), rt.Directory.DeleteLaboratory)
	admin.GET("/transactions", rt.Billing.List)
	admin.POST("/transactions/:id/status", audit("transaction.status"), rt.Billing.UpdateStatus)

	employee := authed.Group("/employee", middleware.RequireRoles(models.RoleEmployee))
	employee.GET("/dashboard", rt.Dashboard.Employee)
	rt.EmployeeAppointments.Register(employee.Group("/appointments"), audit)
	rt.EmployeeArchive.Register(employee.Group("/archive"), audit)
	rt.EmployeeToday.Register(employee.Group("/today"), audit)

	laboratory := authed.Group("/laboratory", middleware.RequireRoles(models.RoleLaboratory))
	laboratory.GET("/dashboard", rt.Dashboard.Laboratory)
}
