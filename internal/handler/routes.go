package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samsoncodes33/Isaac-IT-frontend/internal/models"
	"github.com/samsoncodes33/Isaac-IT-frontend/internal/view"
)

// legacyPaths maps the old static page locations to their routes.
var legacyPaths = map[string]string{
	"/HTML/index.html":             "/",
	"/HTML/signup.html":            "/signup",
	"/HTML/student-dashboard.html": "/student",
	"/HTML/doi-dashboard.html":     "/doi",
}

// Routes groups the handlers and session middleware mounted by Register.
type Routes struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	API       *ComplaintAPIHandler
	Metrics   *MetricsHandler

	// Session loads the cookie's session; the guards reject requests without one.
	Session            gin.HandlerFunc
	RequireSession     gin.HandlerFunc
	RequireSessionJSON gin.HandlerFunc

	EnableMetrics bool
}

// Register mounts every portal route on r.
func (rt Routes) Register(r *gin.Engine) {
	r.StaticFS("/static", http.FS(view.Static()))

	r.GET("/health", rt.Metrics.Health)
	r.GET("/ready", rt.Metrics.Ready)
	if rt.EnableMetrics {
		r.GET("/metrics", rt.Metrics.Prometheus)
	}

	for from, to := range legacyPaths {
		target := to
		r.GET(from, func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, target)
		})
	}

	pages := r.Group("/", rt.Session)
	pages.GET("/", rt.Auth.LoginPage)
	pages.POST("/login", rt.Auth.Login)
	pages.GET("/signup", rt.Auth.SignupPage)
	pages.POST("/signup", rt.Auth.Signup)
	pages.POST("/logout", rt.Auth.Logout)

	rt.dashboard(pages.Group("/student", rt.RequireSession), models.RoleStudent)
	doi := pages.Group("/doi", rt.RequireSession)
	rt.dashboard(doi, models.RoleDOI)
	doi.POST("/respond", rt.Dashboard.Respond)

	api := r.Group("/api", rt.Session, rt.RequireSessionJSON)
	api.GET("/complaints/mine", rt.API.Mine)
	api.GET("/complaints/all", rt.API.All)
	api.GET("/complaints/pending", rt.API.Pending)
}

func (rt Routes) dashboard(g *gin.RouterGroup, role models.Role) {
	g.GET("", rt.Dashboard.Page(role))
	g.GET("/sections/:section", rt.Dashboard.Section(role))
	g.POST("/complaints", rt.Dashboard.SubmitComplaint(role))
	g.GET("/complaints/export", rt.Dashboard.Export(role))
}
