package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/frahmantamala/office-management/internal"
	userDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/user"
	"github.com/frahmantamala/office-management/internal/sales"
	"github.com/frahmantamala/office-management/internal/store"
	"github.com/frahmantamala/office-management/internal/target"
	"github.com/frahmantamala/office-management/internal/teamstructure"
	"github.com/frahmantamala/office-management/internal/user"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initializeDependencies(ctx)
		if err != nil {
			log.Fatalf("failed to init dependencies: %v", err)
		}
		defer func() { _ = deps.Close(ctx) }()

		if clearData {
			if err := clearSeedData(ctx, deps.Repos); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared users, team structure, targets and sales")
		}

		if err := seed(ctx, deps, time.Now()); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}
	},
}

type seedUser struct {
	email, name, role string
}

var (
	seedManager = seedUser{"rina@office.com", "Rina Manager", "asm"}
	seedAgents  = []seedUser{
		{"fadhil@office.com", "Fadhil", "agent"},
		{"padil@office.com", "Padil", "agent"},
	}
)

func seed(ctx context.Context, deps *Dependencies, now time.Time) error {
	for _, u := range append([]seedUser{seedManager}, seedAgents...) {
		_, err := deps.Users.Create(ctx, &user.CreateUserRequest{
			EmailAddress: u.email,
			FullName:     u.name,
			UserRole:     u.role,
			Status:       userDatamodel.StatusApproved,
		})
		switch {
		case errors.Is(err, internal.ErrUserExists):
			fmt.Println("user already exists:", u.email)
		case err != nil:
			return fmt.Errorf("seed user %s: %w", u.email, err)
		default:
			fmt.Println("Seeded user:", u.email)
		}
	}

	for _, a := range seedAgents {
		if _, err := deps.TeamStructure.Update(ctx, &teamstructure.UpdateMemberRequest{
			UserEmail:    a.email,
			UserName:     a.name,
			UserRole:     a.role,
			ManagerEmail: seedManager.email,
			ManagerName:  seedManager.name,
			ManagerRole:  seedManager.role,
		}); err != nil {
			return fmt.Errorf("seed team member %s: %w", a.email, err)
		}

		_, err := deps.Targets.Create(ctx, &target.CreateTargetRequest{
			UserEmail:    a.email,
			UserName:     a.name,
			UserRole:     a.role,
			ManagerEmail: seedManager.email,
			ManagerName:  seedManager.name,
			Month:        int(now.Month()),
			Year:         now.Year(),
			Goals: target.Goals{
				SavingsAccountTarget: 20,
				DepositsTarget:       50000,
				LoansTarget:          10,
				AppsTarget:           30,
			},
		})
		if err != nil && !errors.Is(err, internal.ErrTargetExists) {
			return fmt.Errorf("seed target %s: %w", a.email, err)
		}

		for day := 1; day <= now.Day(); day++ {
			date := time.Date(now.Year(), now.Month(), day, 0, 0, 0, 0, time.UTC)
			_, err := deps.Sales.Create(ctx, &sales.EntryRequest{Entry: sales.Entry{
				UserEmail:             a.email,
				UserName:              a.name,
				UserRole:              a.role,
				Date:                  date.Format("2006-01-02"),
				SavingsAccountOpened:  1,
				SavingsAccountDeposit: 1500,
				Apps:                  day % 3,
				Loans:                 day % 2,
			}})
			if err != nil && !errors.Is(err, internal.ErrSalesExists) {
				return fmt.Errorf("seed sales %s: %w", a.email, err)
			}
		}
		fmt.Println("Seeded team, target and sales for:", a.email)
	}
	return nil
}

func clearSeedData(ctx context.Context, repos *Repositories) error {
	all := store.NewQuery()
	if _, err := repos.Sales.DeleteMany(ctx, all); err != nil {
		return err
	}
	if _, err := repos.Targets.DeleteMany(ctx, all); err != nil {
		return err
	}
	if _, err := repos.TeamStructure.DeleteMany(ctx, all); err != nil {
		return err
	}
	_, err := repos.Users.DeleteMany(ctx, all)
	return err
}
