package teamstructure

import (
	"fmt"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	"github.com/frahmantamala/office-management/internal/store"
)

// BatchUpdateRequest moves users under one manager. ManagerEmail must be
// present but may be empty.
type BatchUpdateRequest struct {
	UserIDs      []string `json:"userIds"`
	ManagerEmail *string  `json:"managerEmail"`
	ManagerName  string   `json:"managerName"`
	ManagerRole  string   `json:"managerRole"`
}

func (r *BatchUpdateRequest) Validate() error {
	if len(r.UserIDs) == 0 {
		return internal.ErrUserIDsRequired
	}
	if r.ManagerEmail == nil {
		return internal.ErrManagerEmail
	}
	return nil
}

func (r *BatchUpdateRequest) manager() Manager {
	return Manager{Email: *r.ManagerEmail, Name: r.ManagerName, Role: r.ManagerRole}
}

type BatchError struct {
	UserEmail string `json:"userEmail"`
	Error     string `json:"error"`
}

type BatchResults struct {
	Updated int          `json:"updated"`
	Created int          `json:"created"`
	Errors  []BatchError `json:"errors"`
}

type BatchUpdateResult struct {
	Message string       `json:"message"`
	Results BatchResults `json:"results"`
}

func newBatchUpdateResult(results BatchResults) *BatchUpdateResult {
	return &BatchUpdateResult{
		Message: fmt.Sprintf("Batch update completed. Updated: %d, Created: %d, Errors: %d",
			results.Updated, results.Created, len(results.Errors)),
		Results: results,
	}
}

type UpdateMemberRequest struct {
	UserEmail    string `json:"userEmail"`
	UserName     string `json:"userName"`
	UserRole     string `json:"userRole"`
	ManagerEmail string `json:"managerEmail"`
	ManagerName  string `json:"managerName"`
	ManagerRole  string `json:"managerRole"`
}

func (r *UpdateMemberRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("userEmail", r.UserEmail).Required()
	v.Field("userName", r.UserName).Required()
	v.Field("userRole", r.UserRole).Required()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}
	return nil
}

// UpsertResult is the insert result for a new member and the update result
// for an existing one.
type UpsertResult struct {
	Acknowledged  bool   `json:"acknowledged"`
	InsertedID    string `json:"insertedId,omitempty"`
	MatchedCount  int64  `json:"matchedCount"`
	ModifiedCount int64  `json:"modifiedCount"`
}

type RemoveResult struct {
	Message string              `json:"message"`
	Result  *store.DeleteResult `json:"result"`
}
