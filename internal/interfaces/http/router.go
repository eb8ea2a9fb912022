package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sawaid25/aixosfire-api/internal/application/analytics"
	"github.com/sawaid25/aixosfire-api/internal/application/auth"
	"github.com/sawaid25/aixosfire-api/internal/application/booking"
	"github.com/sawaid25/aixosfire-api/internal/application/certificate"
	"github.com/sawaid25/aixosfire-api/internal/application/tracking"
	"github.com/sawaid25/aixosfire-api/internal/application/usecase"
	"github.com/sawaid25/aixosfire-api/internal/application/visit"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	WizardUC      *visit.WizardUseCase
	SubmitUC      *visit.SubmitUseCase
	MediaStore    visit.MediaStore
	CustomerUC    *usecase.CustomerUseCase
	AgentUC       *usecase.AgentUseCase
	BookingUC     *booking.BookingUseCase
	DashboardUC   *analytics.DashboardUseCase
	TrackingUC    *tracking.TrackingUseCase
	CertificateUC *certificate.CertificateUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register/agent", authHandler.RegisterAgent)
	authGroup.Post("/register/customer", authHandler.RegisterCustomer)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Wizard de visitas (solo agentes)
	visits := protected.Group("/visits", RequireRole(auth.RoleAgent))
	visitHandler := NewVisitHandler(deps.WizardUC, deps.SubmitUC, deps.MediaStore)
	visits.Post("/drafts", visitHandler.CreateDraft)
	visits.Get("/drafts/:id", visitHandler.GetDraft)
	visits.Put("/drafts/:id/identification", visitHandler.UpdateIdentification)
	visits.Put("/drafts/:id/assessment", visitHandler.UpdateAssessment)
	visits.Post("/drafts/:id/advance", visitHandler.Advance)
	visits.Post("/drafts/:id/retreat", visitHandler.Retreat)
	visits.Post("/drafts/:id/lines", visitHandler.AddLine)
	visits.Patch("/drafts/:id/lines/:index", visitHandler.UpdateLine)
	visits.Delete("/drafts/:id/lines/:index", visitHandler.RemoveLine)
	visits.Get("/drafts/:id/qr-preview", visitHandler.QRPreview)
	visits.Post("/drafts/:id/submit", visitHandler.Submit)
	visits.Get("/customers/search", visitHandler.SearchCustomers)
	visits.Post("/media/:kind", visitHandler.UploadMedia)
	visits.Get("/media/*", visitHandler.GetMedia)

	// Clientes (admin y agentes listan; un cliente solo se ve a sí mismo)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", RequireRole(auth.RoleAdmin, auth.RoleAgent), customerHandler.List)
	customers.Get("/me", RequireRole(auth.RoleCustomer), customerHandler.Me)
	customers.Get("/:id", customerHandler.Detail)
	customers.Get("/:id/extinguishers", customerHandler.Inventory)
	customers.Get("/:id/qr", customerHandler.EnsureQR)

	// Agentes: historial propio y aprobación por el admin
	agents := protected.Group("/agents")
	agentHandler := NewAgentHandler(deps.AgentUC)
	agents.Get("/me/customers", RequireRole(auth.RoleAgent), agentHandler.VisitedCustomers)
	agents.Get("/me/visits", RequireRole(auth.RoleAgent), agentHandler.Visits)
	agents.Get("/", RequireRole(auth.RoleAdmin), agentHandler.List)
	agents.Post("/:id/approve", RequireRole(auth.RoleAdmin), agentHandler.Approve)
	agents.Post("/:id/reject", RequireRole(auth.RoleAdmin), agentHandler.Reject)

	// Reservas de servicio
	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(deps.BookingUC)
	bookings.Post("/", RequireRole(auth.RoleCustomer), bookingHandler.Create)
	bookings.Get("/", RequireRole(auth.RoleAdmin), bookingHandler.List)
	bookings.Get("/mine", RequireRole(auth.RoleCustomer), bookingHandler.ListMine)
	bookings.Get("/assigned", RequireRole(auth.RoleAgent), bookingHandler.ListAssigned)
	bookings.Post("/:id/assign", RequireRole(auth.RoleAdmin), bookingHandler.Assign)
	bookings.Post("/:id/start", RequireRole(auth.RoleAgent), bookingHandler.Start)
	bookings.Post("/:id/complete", RequireRole(auth.RoleAgent), bookingHandler.Complete)
	bookings.Post("/:id/cancel", RequireRole(auth.RoleAdmin, auth.RoleCustomer), bookingHandler.Cancel)

	// Dashboards y mapa en vivo
	dashboards := protected.Group("/dashboards")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboards.Get("/admin", RequireRole(auth.RoleAdmin), dashboardHandler.AdminSummary)
	dashboards.Get("/agent", RequireRole(auth.RoleAgent), dashboardHandler.AgentSummary)
	dashboards.Get("/map", RequireRole(auth.RoleAdmin), dashboardHandler.MapFeed)

	// Tracking de posición (agentes y clientes)
	trackingGroup := protected.Group("/tracking", RequireRole(auth.RoleAgent, auth.RoleCustomer))
	trackingHandler := NewTrackingHandler(deps.TrackingUC)
	trackingGroup.Post("/position", trackingHandler.Report)

	// Certificados PDF
	certificates := protected.Group("/certificates", RequireRole(auth.RoleAdmin, auth.RoleCustomer))
	certificateHandler := NewCertificateHandler(deps.CertificateUC)
	certificates.Get("/extinguishers/:id", certificateHandler.Generate)
}
