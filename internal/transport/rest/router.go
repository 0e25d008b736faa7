package rest

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/office-management/internal/attendance"
	"github.com/frahmantamala/office-management/internal/crud"
	"github.com/frahmantamala/office-management/internal/jobpost"
	"github.com/frahmantamala/office-management/internal/leave"
	"github.com/frahmantamala/office-management/internal/notice"
	"github.com/frahmantamala/office-management/internal/performance"
	"github.com/frahmantamala/office-management/internal/sales"
	"github.com/frahmantamala/office-management/internal/target"
	"github.com/frahmantamala/office-management/internal/task"
	"github.com/frahmantamala/office-management/internal/teamstructure"
	"github.com/frahmantamala/office-management/internal/ticket"
	"github.com/frahmantamala/office-management/internal/transport/middleware"
	"github.com/frahmantamala/office-management/internal/transport/swagger"
	"github.com/frahmantamala/office-management/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers groups every module handler the router mounts. Nil handlers are
// skipped.
type Handlers struct {
	Health           *HealthHandler
	Attendance       *attendance.Handler
	User             *user.Handler
	Sales            *sales.Handler
	Target           *target.Handler
	Performance      *performance.Handler
	TeamStructure    *teamstructure.Handler
	Tasks            *crud.Handler[task.Task]
	AgentBranchTasks *crud.Handler[task.Task]
	Leave            *leave.Handler
	JobPost          *jobpost.Handler
	Notices          *crud.Handler[notice.Notice]
	Tickets          *crud.Handler[ticket.Ticket]
}

type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

func RegisterAllRoutes(router *chi.Mux, h Handlers, opts Options, logger *slog.Logger) {
	router.Use(middleware.CORS(opts.AllowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.Locale)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))
	if opts.RequestTimeout > 0 {
		router.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}

	router.Get("/openapi.yml", swagger.SpecHandler())
	router.Handle("/swagger/*", swagger.Handler())

	if h.Health != nil {
		router.Get("/", h.Health.Root)
		router.Get("/health", h.Health.Health)
		router.Get("/ping", h.Health.Ping)
	}

	if a := h.Attendance; a != nil {
		router.Route("/attendance", func(r chi.Router) {
			r.Post("/check-in", a.CheckIn)
			r.Put("/check-out", a.CheckOut)
			r.Post("/location-change", a.ChangeLocation)
			r.Get("/location-changes", a.LocationChanges)
			r.Get("/status", a.Status)
			r.Get("/check-auto-absent", a.CheckAutoAbsent)
			r.Get("/history", a.History)
			r.Get("/all", a.All)
			r.Post("/mark-absent", a.MarkAbsent)
		})
		router.Get("/attendance-by-month", a.ByMonth)
		router.Patch("/attend/auto-out", a.AutoOut)
	}

	if u := h.User; u != nil {
		router.Route("/users", func(r chi.Router) {
			r.Get("/", u.GetUsers)
			r.Post("/", u.CreateUser)
			r.Put("/approve/{id}", u.ApproveUser)
			r.Get("/{id}", u.GetUser)
			r.Put("/{id}", u.UpdateUser)
			r.Delete("/{id}", u.DeleteUser)
		})
		router.Get("/user-by-email", u.GetUserByEmail)
	}

	if s := h.Sales; s != nil {
		router.Route("/sales", func(r chi.Router) {
			r.Get("/", s.GetSales)
			r.Post("/", s.CreateSales)
			r.Get("/all", s.GetAllSales)
			r.Post("/import", s.ImportSales)
			r.Put("/{id}", s.UpdateSales)
			r.Delete("/{id}", s.DeleteSales)
		})
	}

	if t := h.Target; t != nil {
		router.Route("/targets", func(r chi.Router) {
			r.Get("/", t.GetTargets)
			r.Post("/", t.CreateTarget)
			r.Put("/{id}", t.UpdateTarget)
			r.Delete("/{id}", t.DeleteTarget)
		})
	}

	if p := h.Performance; p != nil {
		router.Get("/performance", p.GetPerformance)
		router.Get("/team-performance", p.GetTeamPerformance)
	}

	if ts := h.TeamStructure; ts != nil {
		router.Get("/team-structure", ts.GetTeamStructure)
		router.Post("/batch-update-team-structure", ts.BatchUpdate)
		router.Post("/update-team-structure", ts.UpdateMember)
		router.Delete("/team-structure/{userEmail}", ts.RemoveMember)
		router.Delete("/team-structure-rsm/{userEmail}", ts.RemoveMember)
	}

	mount(router, "/tasks", h.Tasks)
	mount(router, "/agent-branch-tasks", h.AgentBranchTasks)
	mount(router, "/notices", h.Notices)
	mount(router, "/tickets", h.Tickets)

	if l := h.Leave; l != nil {
		router.Post("/add-leave", l.AddLeave)
		router.Get("/leaves", l.GetLeaves)
		router.Get("/leaves-email", l.GetLeavesByEmail)
		router.Get("/pending-leaves", l.GetPendingLeaves)
		router.Patch("/approve-leaves/{id}", l.ApproveLeave)
		router.Patch("/reject-leaves/{id}", l.RejectLeave)
	}

	if j := h.JobPost; j != nil {
		router.Route("/job-posts", func(r chi.Router) {
			r.Get("/", j.GetPosts)
			r.Post("/", j.CreatePost)
			r.Get("/{id}", j.GetPost)
			r.Put("/{id}", j.UpdatePost)
			r.Delete("/{id}", j.DeletePost)
			r.Patch("/{id}/archive", j.ArchivePost)
		})
		router.Route("/job-applications", func(r chi.Router) {
			r.Get("/", j.GetApplications)
			r.Post("/", j.SubmitApplication)
			r.Post("/generate-report", j.GenerateReport)
			r.Get("/{id}", j.GetApplication)
			r.Patch("/{id}/status", j.SetApplicationStatus)
		})
	}
}

func mount[T any](router chi.Router, path string, h *crud.Handler[T]) {
	if h == nil {
		return
	}
	router.Mount(path, h.Routes())
}
