package target

import "github.com/frahmantamala/office-management/internal/store"

const Collection = "targets"

var Indexes = []store.Index{
	{Keys: []string{"user_email", "month", "year"}, Unique: true},
	{Keys: []string{"manager_email", "month", "year"}},
}

// Target is one user's monthly goal sheet.
type Target struct {
	store.Model  `bson:",inline"`
	UserEmail    string `json:"userEmail" bson:"user_email" gorm:"column:user_email;size:255"`
	UserName     string `json:"userName" bson:"user_name" gorm:"column:user_name"`
	UserRole     string `json:"userRole" bson:"user_role" gorm:"column:user_role"`
	ManagerEmail string `json:"managerEmail" bson:"manager_email" gorm:"column:manager_email;size:255"`
	ManagerName  string `json:"managerName" bson:"manager_name" gorm:"column:manager_name"`
	Month        int    `json:"month" bson:"month" gorm:"column:month"`
	Year         int    `json:"year" bson:"year" gorm:"column:year"`

	Goals `bson:",inline"`

	Notes string `json:"notes" bson:"notes" gorm:"column:notes"`
}

// Goals are the eleven monthly objectives.
type Goals struct {
	SavingsAccountTarget  float64 `json:"savingsAccountTarget" bson:"savings_account_target" gorm:"column:savings_account_target"`
	PraAccountTarget      float64 `json:"praAccountTarget" bson:"pra_account_target" gorm:"column:pra_account_target"`
	CurrentAccountTarget  float64 `json:"currentAccountTarget" bson:"current_account_target" gorm:"column:current_account_target"`
	SndAccountTarget      float64 `json:"sndAccountTarget" bson:"snd_account_target" gorm:"column:snd_account_target"`
	FdrTermAccountTarget  float64 `json:"fdrTermAccountTarget" bson:"fdr_term_account_target" gorm:"column:fdr_term_account_target"`
	DpsAccountTarget      float64 `json:"dpsAccountTarget" bson:"dps_account_target" gorm:"column:dps_account_target"`
	DepositsTarget        float64 `json:"depositsTarget" bson:"deposits_target" gorm:"column:deposits_target"`
	LoansTarget           float64 `json:"loansTarget" bson:"loans_target" gorm:"column:loans_target"`
	QROnboardingTarget    float64 `json:"qrOnboardingTarget" bson:"qr_onboarding_target" gorm:"column:qr_onboarding_target"`
	AppsTarget            float64 `json:"appsTarget" bson:"apps_target" gorm:"column:apps_target"`
	CardActivationsTarget float64 `json:"cardActivationsTarget" bson:"card_activations_target" gorm:"column:card_activations_target"`
}
