package sales

import (
	salesDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/sales"
)

type Entry = salesDatamodel.Entry

// ApplyDefaults derives todayDeposit and totalAccounts from the per-product
// figures when the client left them at zero.
func ApplyDefaults(e *Entry) {
	if e.TodayDeposit == 0 {
		e.TodayDeposit = e.DepositSum()
	}
	if e.TotalAccounts == 0 {
		e.TotalAccounts = e.AccountSum()
	}
}
