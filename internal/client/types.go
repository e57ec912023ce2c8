package client

import "github.com/yungbote/account-inventory/internal/inventory"

// The API speaks the inventory package's JSON shapes directly.
type (
	Account        = inventory.Account
	AccountSummary = inventory.AccountSummary
	Stats          = inventory.Stats
	Filter         = inventory.Filter
)

// Info is the payload of GET /.
type Info struct {
	Message string `json:"message"`
	Version string `json:"version"`
}
