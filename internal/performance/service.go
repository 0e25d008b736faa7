package performance

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	salesDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/sales"
	targetDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/target"
	teamDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/teamstructure"
	"github.com/frahmantamala/office-management/internal/store"
)

type Repositories struct {
	Targets store.Repository[targetDatamodel.Target]
	Sales   store.Repository[salesDatamodel.Entry]
	Team    store.Repository[teamDatamodel.Member]
}

type Service struct {
	repos  Repositories
	logger *slog.Logger
}

func NewService(repos Repositories, logger *slog.Logger) *Service {
	return &Service{repos: repos, logger: logger}
}

func parsePeriod(subject, month, year string, missing *internal.AppError) (int, int, error) {
	if subject == "" || month == "" || year == "" {
		return 0, 0, missing
	}
	m, errM := strconv.Atoi(month)
	y, errY := strconv.Atoi(year)
	if errM != nil || errY != nil {
		return 0, 0, missing
	}

	v := validation.NewValidator()
	v.Field("month", m).MinInt(1).MaxInt(12)
	v.Field("year", y).MinInt(1970)
	if err := v.Validate(); err != nil {
		return 0, 0, err
	}
	return m, y, nil
}

// Performance scores one user's month against their target.
func (s *Service) Performance(ctx context.Context, userEmail, month, year string) (*Report, error) {
	m, y, err := parsePeriod(userEmail, month, year, internal.ErrPerformanceParams)
	if err != nil {
		return nil, err
	}

	target, err := s.repos.Targets.FindOne(ctx, store.NewQuery().
		Eq("user_email", userEmail).
		Eq("month", m).
		Eq("year", y))
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, internal.ErrNoMonthTarget
	}

	from, to := MonthRange(m, y)
	entries, err := s.repos.Sales.Find(ctx, store.NewQuery().
		Eq("user_email", userEmail).
		Between("date", from, to))
	if err != nil {
		return nil, err
	}

	report := BuildReport(target, entries)
	return &report, nil
}

// TeamPerformance scores everyone the manager set a target for, plus their
// team-structure reports (and the reports of their ASMs) that have one.
func (s *Service) TeamPerformance(ctx context.Context, managerEmail, month, year string) ([]*MemberReport, error) {
	m, y, err := parsePeriod(managerEmail, month, year, internal.ErrTeamPerformanceParams)
	if err != nil {
		return nil, err
	}

	targets, err := s.repos.Targets.Find(ctx, store.NewQuery().
		Eq("manager_email", managerEmail).
		Eq("month", m).
		Eq("year", y).
		Asc("user_email"))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		seen[t.UserEmail] = true
	}

	memberEmails, err := s.teamEmails(ctx, managerEmail)
	if err != nil {
		return nil, err
	}
	var missing []any
	for _, email := range memberEmails {
		if !seen[email] {
			missing = append(missing, email)
		}
	}
	if len(missing) > 0 {
		more, err := s.repos.Targets.Find(ctx, store.NewQuery().
			In("user_email", missing...).
			Eq("month", m).
			Eq("year", y).
			Asc("user_email"))
		if err != nil {
			return nil, err
		}
		for _, t := range more {
			if !seen[t.UserEmail] {
				seen[t.UserEmail] = true
				targets = append(targets, t)
			}
		}
	}

	if len(targets) == 0 {
		return nil, internal.ErrNoTeamTargets
	}

	emails := make([]any, len(targets))
	for i, t := range targets {
		emails[i] = t.UserEmail
	}
	from, to := MonthRange(m, y)
	entries, err := s.repos.Sales.Find(ctx, store.NewQuery().
		In("user_email", emails...).
		Between("date", from, to))
	if err != nil {
		return nil, err
	}
	byUser := make(map[string][]*SalesEntry)
	for _, e := range entries {
		byUser[e.UserEmail] = append(byUser[e.UserEmail], e)
	}

	reports := make([]*MemberReport, 0, len(targets))
	for _, t := range targets {
		reports = append(reports, &MemberReport{
			UserID:    t.ID,
			UserEmail: t.UserEmail,
			UserName:  t.UserName,
			UserRole:  t.UserRole,
			Report:    BuildReport(t, byUser[t.UserEmail]),
		})
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].OverallPercentage > reports[j].OverallPercentage
	})

	s.logger.Debug("team performance computed", "manager_email", managerEmail, "members", len(reports))
	return reports, nil
}

func (s *Service) teamEmails(ctx context.Context, managerEmail string) ([]string, error) {
	direct, err := s.repos.Team.Find(ctx, store.NewQuery().Eq("manager_email", managerEmail))
	if err != nil {
		return nil, err
	}

	var emails []string
	var asms []any
	for _, member := range direct {
		emails = append(emails, member.UserEmail)
		if strings.EqualFold(member.UserRole, teamDatamodel.RoleASM) {
			asms = append(asms, member.UserEmail)
		}
	}
	if len(asms) == 0 {
		return emails, nil
	}

	indirect, err := s.repos.Team.Find(ctx, store.NewQuery().In("manager_email", asms...))
	if err != nil {
		return nil, err
	}
	for _, member := range indirect {
		emails = append(emails, member.UserEmail)
	}
	return emails, nil
}
