package performance

import (
	"math"
	"time"

	"github.com/frahmantamala/office-management/internal/core/common/validation"
	salesDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/sales"
	targetDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/target"
)

type (
	Target     = targetDatamodel.Target
	SalesEntry = salesDatamodel.Entry
)

// Achievements are a month of sales entries added up.
type Achievements struct {
	SavingsAccountOpened int `json:"savingsAccountOpened"`
	PraAccountOpened     int `json:"praAccountOpened"`
	CurrentAccountOpened int `json:"currentAccountOpened"`
	SndAccountOpened     int `json:"sndAccountOpened"`
	FdrTermAccountOpened int `json:"fdrTermAccountOpened"`
	DpsAccountOpened     int `json:"dpsAccountOpened"`

	SavingsDeposit float64 `json:"savingsDeposit"`
	PraDeposit     float64 `json:"praDeposit"`
	CurrentDeposit float64 `json:"currentDeposit"`
	SndDeposit     float64 `json:"sndDeposit"`
	FdrTermDeposit float64 `json:"fdrTermDeposit"`
	DpsDeposit     float64 `json:"dpsDeposit"`
	TotalDeposit   float64 `json:"totalDeposit"`

	Loans           int `json:"loans"`
	QROnboarding    int `json:"qrOnboarding"`
	Apps            int `json:"apps"`
	CardActivations int `json:"cardActivations"`
}

// Percentages are achievements relative to the goal of each metric.
type Percentages struct {
	SavingsAccount  int `json:"savingsAccountPercentage"`
	PraAccount      int `json:"praAccountPercentage"`
	CurrentAccount  int `json:"currentAccountPercentage"`
	SndAccount      int `json:"sndAccountPercentage"`
	FdrTermAccount  int `json:"fdrTermAccountPercentage"`
	DpsAccount      int `json:"dpsAccountPercentage"`
	Deposits        int `json:"depositsPercentage"`
	Loans           int `json:"loansPercentage"`
	QROnboarding    int `json:"qrOnboardingPercentage"`
	Apps            int `json:"appsPercentage"`
	CardActivations int `json:"cardActivationsPercentage"`
}

func (p Percentages) Values() []int {
	return []int{
		p.SavingsAccount, p.PraAccount, p.CurrentAccount, p.SndAccount,
		p.FdrTermAccount, p.DpsAccount, p.Deposits, p.Loans,
		p.QROnboarding, p.Apps, p.CardActivations,
	}
}

// MonthRange returns the first and last day keys of a calendar month.
func MonthRange(month, year int) (string, string) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(validation.DayLayout), last.Format(validation.DayLayout)
}

func Accumulate(entries []*SalesEntry) Achievements {
	var a Achievements
	for _, e := range entries {
		a.SavingsAccountOpened += e.SavingsAccountOpened
		a.PraAccountOpened += e.PraAccountOpened
		a.CurrentAccountOpened += e.CurrentAccountOpened
		a.SndAccountOpened += e.SndAccountOpened
		a.FdrTermAccountOpened += e.FdrTermAccountOpened
		a.DpsAccountOpened += e.DpsAccountOpened

		a.SavingsDeposit += e.SavingsAccountDeposit
		a.PraDeposit += e.PraAccountDeposit
		a.CurrentDeposit += e.CurrentAccountDeposit
		a.SndDeposit += e.SndAccountDeposit
		a.FdrTermDeposit += e.FdrTermDeposit
		a.DpsDeposit += e.DpsDeposit
		a.TotalDeposit += e.TodayDeposit

		a.Loans += e.Loans
		a.QROnboarding += e.QROnboarding
		a.Apps += e.Apps
		a.CardActivations += e.CardActivations
	}
	return a
}

// Percentage is achieved/target as a whole percent, rounded half up. A
// missing or zero target yields 0.
func Percentage(achieved, target float64) int {
	if target <= 0 {
		return 0
	}
	return int(math.Floor(achieved/target*100 + 0.5))
}

func Score(t *Target, a Achievements) Percentages {
	return Percentages{
		SavingsAccount:  Percentage(float64(a.SavingsAccountOpened), t.SavingsAccountTarget),
		PraAccount:      Percentage(float64(a.PraAccountOpened), t.PraAccountTarget),
		CurrentAccount:  Percentage(float64(a.CurrentAccountOpened), t.CurrentAccountTarget),
		SndAccount:      Percentage(float64(a.SndAccountOpened), t.SndAccountTarget),
		FdrTermAccount:  Percentage(float64(a.FdrTermAccountOpened), t.FdrTermAccountTarget),
		DpsAccount:      Percentage(float64(a.DpsAccountOpened), t.DpsAccountTarget),
		Deposits:        Percentage(a.TotalDeposit, t.DepositsTarget),
		Loans:           Percentage(float64(a.Loans), t.LoansTarget),
		QROnboarding:    Percentage(float64(a.QROnboarding), t.QROnboardingTarget),
		Apps:            Percentage(float64(a.Apps), t.AppsTarget),
		CardActivations: Percentage(float64(a.CardActivations), t.CardActivationsTarget),
	}
}

// Overall averages the nonzero percentages only, so a metric at 0% weighs the
// same as a metric without a goal.
func Overall(p Percentages) int {
	sum, n := 0, 0
	for _, v := range p.Values() {
		if v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(math.Floor(float64(sum)/float64(n) + 0.5))
}

// Report is one user's scorecard for a month.
type Report struct {
	Target            *Target      `json:"target"`
	Achievements      Achievements `json:"achievements"`
	Percentages       Percentages  `json:"percentages"`
	OverallPercentage int          `json:"overallPercentage"`
	SalesCount        int          `json:"salesCount"`
}

func BuildReport(t *Target, entries []*SalesEntry) Report {
	a := Accumulate(entries)
	p := Score(t, a)
	return Report{
		Target:            t,
		Achievements:      a,
		Percentages:       p,
		OverallPercentage: Overall(p),
		SalesCount:        len(entries),
	}
}

type MemberReport struct {
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
	UserRole  string `json:"userRole"`
	Report
}
