package target

import (
	targetDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/target"
	"github.com/frahmantamala/office-management/internal/store"
)

type (
	Target = targetDatamodel.Target
	Goals  = targetDatamodel.Goals
)

// goalFields flattens goals into their stored column names.
func goalFields(g Goals) store.Fields {
	return store.Fields{
		"savings_account_target":  g.SavingsAccountTarget,
		"pra_account_target":      g.PraAccountTarget,
		"current_account_target":  g.CurrentAccountTarget,
		"snd_account_target":      g.SndAccountTarget,
		"fdr_term_account_target": g.FdrTermAccountTarget,
		"dps_account_target":      g.DpsAccountTarget,
		"deposits_target":         g.DepositsTarget,
		"loans_target":            g.LoansTarget,
		"qr_onboarding_target":    g.QROnboardingTarget,
		"apps_target":             g.AppsTarget,
		"card_activations_target": g.CardActivationsTarget,
	}
}
