package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/attendance"
	attendanceDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/attendance"
	jobDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/jobpost"
	leaveDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/leave"
	noticeDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/notice"
	salesDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/sales"
	targetDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/target"
	taskDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/task"
	teamDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/teamstructure"
	ticketDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/ticket"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/core/events"
	"github.com/frahmantamala/office-management/internal/crud"
	"github.com/frahmantamala/office-management/internal/jobpost"
	"github.com/frahmantamala/office-management/internal/leave"
	"github.com/frahmantamala/office-management/internal/notice"
	"github.com/frahmantamala/office-management/internal/performance"
	"github.com/frahmantamala/office-management/internal/sales"
	"github.com/frahmantamala/office-management/internal/scheduler"
	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/target"
	"github.com/frahmantamala/office-management/internal/task"
	"github.com/frahmantamala/office-management/internal/teamstructure"
	"github.com/frahmantamala/office-management/internal/ticket"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/frahmantamala/office-management/internal/transport/rest"
	"github.com/frahmantamala/office-management/internal/user"
	"github.com/frahmantamala/office-management/pkg/logger"
)

// Repositories holds one repository per collection.
type Repositories struct {
	Users            store.Repository[userDatamodel.User]
	Attendance       store.Repository[attendanceDatamodel.Record]
	LocationChanges  store.Repository[attendanceDatamodel.LocationChange]
	Sales            store.Repository[salesDatamodel.Entry]
	Targets          store.Repository[targetDatamodel.Target]
	TeamStructure    store.Repository[teamDatamodel.Member]
	Tasks            store.Repository[taskDatamodel.Task]
	AgentBranchTasks store.Repository[taskDatamodel.Task]
	Leaves           store.Repository[leaveDatamodel.Leave]
	JobPosts         store.Repository[jobDatamodel.Post]
	JobApplications  store.Repository[jobDatamodel.Application]
	Notices          store.Repository[noticeDatamodel.Notice]
	Tickets          store.Repository[ticketDatamodel.Ticket]
}

type Dependencies struct {
	Config *internal.Config
	Logger *slog.Logger
	Store  *store.Store
	Bus    *events.EventBus
	Repos  *Repositories

	Attendance       *attendance.Service
	Users            *user.Service
	Sales            *sales.Service
	Targets          *target.Service
	Performance      *performance.Service
	TeamStructure    *teamstructure.Service
	Tasks            *crud.Service[task.Task]
	AgentBranchTasks *crud.Service[task.Task]
	TaskCleanup      *task.Cleanup
	Leaves           *leave.Service
	Jobs             *jobpost.Service
	Notices          *crud.Service[notice.Notice]
	Tickets          *crud.Service[ticket.Ticket]
}

// openRepositories creates every collection's indexes (and tables on SQL
// backends) as a side effect.
func openRepositories(ctx context.Context, st *store.Store) (*Repositories, error) {
	var (
		repos Repositories
		err   error
	)
	open := func(name string, fn func() error) {
		if err != nil {
			return
		}
		if e := fn(); e != nil {
			err = fmt.Errorf("open %s: %w", name, e)
		}
	}

	open(userDatamodel.Collection, func() (e error) {
		repos.Users, e = store.NewRepository[userDatamodel.User](ctx, st, userDatamodel.Collection, userDatamodel.Indexes...)
		return
	})
	open(attendanceDatamodel.CollectionRecords, func() (e error) {
		repos.Attendance, e = store.NewRepository[attendanceDatamodel.Record](ctx, st, attendanceDatamodel.CollectionRecords, attendanceDatamodel.RecordIndexes...)
		return
	})
	open(attendanceDatamodel.CollectionLocationChanges, func() (e error) {
		repos.LocationChanges, e = store.NewRepository[attendanceDatamodel.LocationChange](ctx, st, attendanceDatamodel.CollectionLocationChanges, attendanceDatamodel.LocationChangeIndexes...)
		return
	})
	open(salesDatamodel.Collection, func() (e error) {
		repos.Sales, e = store.NewRepository[salesDatamodel.Entry](ctx, st, salesDatamodel.Collection, salesDatamodel.Indexes...)
		return
	})
	open(targetDatamodel.Collection, func() (e error) {
		repos.Targets, e = store.NewRepository[targetDatamodel.Target](ctx, st, targetDatamodel.Collection, targetDatamodel.Indexes...)
		return
	})
	open(teamDatamodel.Collection, func() (e error) {
		repos.TeamStructure, e = store.NewRepository[teamDatamodel.Member](ctx, st, teamDatamodel.Collection, teamDatamodel.Indexes...)
		return
	})
	open(taskDatamodel.CollectionTasks, func() (e error) {
		repos.Tasks, e = store.NewRepository[taskDatamodel.Task](ctx, st, taskDatamodel.CollectionTasks, taskDatamodel.Indexes...)
		return
	})
	open(taskDatamodel.CollectionAgentBranchTasks, func() (e error) {
		repos.AgentBranchTasks, e = store.NewRepository[taskDatamodel.Task](ctx, st, taskDatamodel.CollectionAgentBranchTasks, taskDatamodel.Indexes...)
		return
	})
	open(leaveDatamodel.Collection, func() (e error) {
		repos.Leaves, e = store.NewRepository[leaveDatamodel.Leave](ctx, st, leaveDatamodel.Collection, leaveDatamodel.Indexes...)
		return
	})
	open(jobDatamodel.CollectionPosts, func() (e error) {
		repos.JobPosts, e = store.NewRepository[jobDatamodel.Post](ctx, st, jobDatamodel.CollectionPosts, jobDatamodel.PostIndexes...)
		return
	})
	open(jobDatamodel.CollectionApplications, func() (e error) {
		repos.JobApplications, e = store.NewRepository[jobDatamodel.Application](ctx, st, jobDatamodel.CollectionApplications, jobDatamodel.ApplicationIndexes...)
		return
	})
	open(noticeDatamodel.Collection, func() (e error) {
		repos.Notices, e = store.NewRepository[noticeDatamodel.Notice](ctx, st, noticeDatamodel.Collection, noticeDatamodel.Indexes...)
		return
	})
	open(ticketDatamodel.Collection, func() (e error) {
		repos.Tickets, e = store.NewRepository[ticketDatamodel.Ticket](ctx, st, ticketDatamodel.Collection, ticketDatamodel.Indexes...)
		return
	})

	if err != nil {
		return nil, err
	}
	return &repos, nil
}

func openStore(ctx context.Context, cfg internal.DatabaseConfig) (*store.Store, error) {
	ctx, cancel := internal.WithTimeout(ctx, cfg.OpTimeout)
	defer cancel()

	return store.Open(ctx, store.Config{
		Driver:       cfg.Driver,
		URI:          cfg.URI,
		Name:         cfg.Name,
		Source:       cfg.Source,
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
	})
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	cfg, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := setupRuntime(cfg); err != nil {
		return nil, fmt.Errorf("failed to load message catalogs: %w", err)
	}

	st, err := openStore(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	deps, err := buildDependencies(ctx, cfg, st, logger.LoggerWrapper())
	if err != nil {
		_ = st.Close(ctx)
		return nil, err
	}
	return deps, nil
}

// buildDependencies wires every service on top of an opened store.
func buildDependencies(ctx context.Context, cfg *internal.Config, st *store.Store, lg *slog.Logger) (*Dependencies, error) {
	repos, err := openRepositories(ctx, st)
	if err != nil {
		return nil, err
	}

	policy, err := attendance.NewPolicy(cfg.Attendance)
	if err != nil {
		return nil, fmt.Errorf("invalid attendance policy: %w", err)
	}

	bus := events.NewEventBus(lg)
	bus.Subscribe(events.Wildcard, events.AuditLogger(lg.With("component", "audit")))

	return &Dependencies{
		Config: cfg,
		Logger: lg,
		Store:  st,
		Bus:    bus,
		Repos:  repos,

		Attendance: attendance.NewService(attendance.Repositories{
			Records: repos.Attendance,
			Events:  repos.LocationChanges,
			Users:   repos.Users,
		}, policy, bus, lg.With("component", "attendance")),
		Users:   user.NewService(repos.Users, lg.With("component", "user")),
		Sales:   sales.NewService(repos.Sales, lg.With("component", "sales")),
		Targets: target.NewService(repos.Targets, lg.With("component", "target")),
		Performance: performance.NewService(performance.Repositories{
			Targets: repos.Targets,
			Sales:   repos.Sales,
			Team:    repos.TeamStructure,
		}, lg.With("component", "performance")),
		TeamStructure: teamstructure.NewService(teamstructure.Repositories{
			Members: repos.TeamStructure,
			Users:   repos.Users,
		}, lg.With("component", "teamstructure")),
		Tasks:            crud.NewService(repos.Tasks, task.Resource("tasks"), lg),
		AgentBranchTasks: crud.NewService(repos.AgentBranchTasks, task.Resource("agent-branch-tasks"), lg),
		TaskCleanup:      task.NewCleanup(lg.With("component", "task"), repos.Tasks, repos.AgentBranchTasks),
		Leaves:           leave.NewService(repos.Leaves, lg.With("component", "leave")),
		Jobs: jobpost.NewService(jobpost.Repositories{
			Posts:        repos.JobPosts,
			Applications: repos.JobApplications,
		}, bus, lg.With("component", "jobpost")),
		Notices: crud.NewService(repos.Notices, notice.Resource(), lg),
		Tickets: crud.NewService(repos.Tickets, ticket.Resource(), lg),
	}, nil
}

func (d *Dependencies) Handlers() rest.Handlers {
	base := transport.NewBaseHandler(d.Logger)
	return rest.Handlers{
		Health:           rest.NewHealthHandler(base, d.Store),
		Attendance:       attendance.NewHandler(base, d.Attendance),
		User:             user.NewHandler(base, d.Users),
		Sales:            sales.NewHandler(base, d.Sales),
		Target:           target.NewHandler(base, d.Targets),
		Performance:      performance.NewHandler(base, d.Performance),
		TeamStructure:    teamstructure.NewHandler(base, d.TeamStructure),
		Tasks:            crud.NewHandler(base, d.Tasks),
		AgentBranchTasks: crud.NewHandler(base, d.AgentBranchTasks),
		Leave:            leave.NewHandler(base, d.Leaves),
		JobPost:          jobpost.NewHandler(base, d.Jobs),
		Notices:          crud.NewHandler(base, d.Notices),
		Tickets:          crud.NewHandler(base, d.Tickets),
	}
}

// Scheduler registers every sweep under its configured name.
func (d *Dependencies) Scheduler() (*scheduler.Scheduler, error) {
	s, err := scheduler.New(d.Config.Scheduler, d.Logger)
	if err != nil {
		return nil, err
	}
	s.Register("auto-checkout", d.Attendance.AutoCheckoutSweep)
	s.Register("auto-absent", d.Attendance.AutoAbsentSweep)
	s.Register("task-cleanup", d.TaskCleanup.Sweep)
	s.Register("job-post-close", d.Jobs.CloseExpired)
	return s, nil
}

// Close waits for background event handlers, then releases the store.
func (d *Dependencies) Close(ctx context.Context) error {
	d.Bus.Wait()
	return d.Store.Close(ctx)
}
