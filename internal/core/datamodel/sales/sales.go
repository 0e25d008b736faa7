package sales

import "github.com/frahmantamala/office-management/internal/store"

const Collection = "sales"

var Indexes = []store.Index{
	{Keys: []string{"user_email", "date"}, Unique: true},
	{Keys: []string{"date"}},
}

// Entry is one user's sales activity for one day.
type Entry struct {
	store.Model `bson:",inline"`
	UserEmail   string `json:"userEmail" bson:"user_email" gorm:"column:user_email;size:255"`
	UserName    string `json:"userName" bson:"user_name" gorm:"column:user_name"`
	UserRole    string `json:"userRole" bson:"user_role" gorm:"column:user_role"`
	Date        string `json:"date" bson:"date" gorm:"column:date;size:10"`

	SavingsAccountOpened  int     `json:"savingsAccountOpened" bson:"savings_account_opened" gorm:"column:savings_account_opened"`
	SavingsAccountDeposit float64 `json:"savingsAccountDeposit" bson:"savings_account_deposit" gorm:"column:savings_account_deposit"`
	PraAccountOpened      int     `json:"praAccountOpened" bson:"pra_account_opened" gorm:"column:pra_account_opened"`
	PraAccountDeposit     float64 `json:"praAccountDeposit" bson:"pra_account_deposit" gorm:"column:pra_account_deposit"`
	CurrentAccountOpened  int     `json:"currentAccountOpened" bson:"current_account_opened" gorm:"column:current_account_opened"`
	CurrentAccountDeposit float64 `json:"currentAccountDeposit" bson:"current_account_deposit" gorm:"column:current_account_deposit"`
	SndAccountOpened      int     `json:"sndAccountOpened" bson:"snd_account_opened" gorm:"column:snd_account_opened"`
	SndAccountDeposit     float64 `json:"sndAccountDeposit" bson:"snd_account_deposit" gorm:"column:snd_account_deposit"`
	FdrTermAccountOpened  int     `json:"fdrTermAccountOpened" bson:"fdr_term_account_opened" gorm:"column:fdr_term_account_opened"`
	FdrTermDeposit        float64 `json:"fdrTermDeposit" bson:"fdr_term_deposit" gorm:"column:fdr_term_deposit"`
	DpsAccountOpened      int     `json:"dpsAccountOpened" bson:"dps_account_opened" gorm:"column:dps_account_opened"`
	DpsDeposit            float64 `json:"dpsDeposit" bson:"dps_deposit" gorm:"column:dps_deposit"`

	Loans           int `json:"loans" bson:"loans" gorm:"column:loans"`
	QROnboarding    int `json:"qrOnboarding" bson:"qr_onboarding" gorm:"column:qr_onboarding"`
	Apps            int `json:"apps" bson:"apps" gorm:"column:apps"`
	CardActivations int `json:"cardActivations" bson:"card_activations" gorm:"column:card_activations"`

	TodayDeposit        float64 `json:"todayDeposit" bson:"today_deposit" gorm:"column:today_deposit"`
	TodayNetDeposit     float64 `json:"todayNetDeposit" bson:"today_net_deposit" gorm:"column:today_net_deposit"`
	TotalDeposit        float64 `json:"totalDeposit" bson:"total_deposit" gorm:"column:total_deposit"`
	TotalAccounts       int     `json:"totalAccounts" bson:"total_accounts" gorm:"column:total_accounts"`
	TotalQR             int     `json:"totalQR" bson:"total_qr" gorm:"column:total_qr"`
	DayEndHandCash      float64 `json:"dayEndHandCash" bson:"day_end_hand_cash" gorm:"column:day_end_hand_cash"`
	DayEndMotherBalance float64 `json:"dayEndMotherBalance" bson:"day_end_mother_balance" gorm:"column:day_end_mother_balance"`

	AgentBoothName string `json:"agentBoothName" bson:"agent_booth_name" gorm:"column:agent_booth_name"`
	Notes          string `json:"notes" bson:"notes" gorm:"column:notes"`
}

// DepositSum adds the six per-product deposits.
func (e *Entry) DepositSum() float64 {
	return e.SavingsAccountDeposit + e.PraAccountDeposit + e.CurrentAccountDeposit +
		e.SndAccountDeposit + e.FdrTermDeposit + e.DpsDeposit
}

// AccountSum adds the six opened-account counts.
func (e *Entry) AccountSum() int {
	return e.SavingsAccountOpened + e.PraAccountOpened + e.CurrentAccountOpened +
		e.SndAccountOpened + e.FdrTermAccountOpened + e.DpsAccountOpened
}
