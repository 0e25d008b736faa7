package jobpost

import (
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	jobDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/jobpost"
)

type CreatePostRequest struct {
	Title         string           `json:"title"`
	Description   string           `json:"description"`
	CustomFields  []map[string]any `json:"customFields"`
	Deadline      string           `json:"deadline"`
	PostedBy      string           `json:"postedBy"`
	PostedByEmail string           `json:"postedByEmail"`
	PostedByRole  string           `json:"postedByRole"`
	Status        string           `json:"status"`
}

func (r *CreatePostRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("title", r.Title).Required()
	v.Field("description", r.Description).Required()
	v.Field("deadline", r.Deadline).Required()
	v.Field("postedByEmail", r.PostedByEmail).Required()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}
	return nil
}

func (r *CreatePostRequest) ToDataModel() (*Post, error) {
	deadline, err := ParseDeadline(r.Deadline)
	if err != nil {
		return nil, err
	}
	p := &Post{
		Title:         r.Title,
		Description:   r.Description,
		CustomFields:  r.CustomFields,
		Deadline:      deadline,
		PostedBy:      r.PostedBy,
		PostedByEmail: r.PostedByEmail,
		PostedByRole:  r.PostedByRole,
		Status:        r.Status,
	}
	if p.CustomFields == nil {
		p.CustomFields = []map[string]any{}
	}
	if p.Status == "" {
		p.Status = jobDatamodel.PostActive
	}
	return p, nil
}

// UpdatePostRequest changes only the fields present in the body.
type UpdatePostRequest struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	CustomFields []map[string]any `json:"customFields"`
	Deadline     *string          `json:"deadline"`
	Status       *string          `json:"status"`
}

func (r *UpdatePostRequest) apply(p *Post) error {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.CustomFields != nil {
		p.CustomFields = r.CustomFields
	}
	if r.Deadline != nil {
		deadline, err := ParseDeadline(*r.Deadline)
		if err != nil {
			return err
		}
		p.Deadline = deadline
	}
	if r.Status != nil {
		p.Status = *r.Status
	}
	return nil
}

type PostFilter struct {
	Status        string
	PostedByEmail string
}

type SubmitApplicationRequest struct {
	JobPostID               string           `json:"jobPostId"`
	PersonalInfo            map[string]any   `json:"personalInfo"`
	EducationalBackground   []map[string]any `json:"educationalBackground"`
	EmploymentHistory       []map[string]any `json:"employmentHistory"`
	SkillsAndCertifications map[string]any   `json:"skillsAndCertifications"`
	References              []map[string]any `json:"references"`
	AdditionalInfo          map[string]any   `json:"additionalInfo"`
	ContactNumber           string           `json:"contactNumber"`
}

func (r *SubmitApplicationRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("jobPostId", r.JobPostID).Required()
	v.Field("personalInfo", r.PersonalInfo).Required()
	if err := v.ValidateAs(internal.ErrRequiredFields); err != nil {
		return err
	}
	return nil
}

func (r *SubmitApplicationRequest) ToDataModel(p *Post, now time.Time) *Application {
	a := &Application{
		JobPostID:               p.ID,
		JobTitle:                p.Title,
		Status:                  jobDatamodel.ApplicationPending,
		PersonalInfo:            r.PersonalInfo,
		EducationalBackground:   r.EducationalBackground,
		EmploymentHistory:       r.EmploymentHistory,
		SkillsAndCertifications: r.SkillsAndCertifications,
		References:              r.References,
		AdditionalInfo:          r.AdditionalInfo,
		ContactNumber:           r.ContactNumber,
		AppliedAt:               now,
	}
	if a.EducationalBackground == nil {
		a.EducationalBackground = []map[string]any{}
	}
	if a.EmploymentHistory == nil {
		a.EmploymentHistory = []map[string]any{}
	}
	if a.References == nil {
		a.References = []map[string]any{}
	}
	if a.SkillsAndCertifications == nil {
		a.SkillsAndCertifications = map[string]any{}
	}
	if a.AdditionalInfo == nil {
		a.AdditionalInfo = map[string]any{}
	}
	return a
}

type ApplicationFilter struct {
	JobPostID     string
	Status        string
	Sort          string
	SortDirection string
}

type StatusRequest struct {
	Status string `json:"status"`
}

func (r *StatusRequest) Validate() error {
	v := validation.NewValidator()
	v.Field("status", r.Status).Required().OneOf(
		jobDatamodel.ApplicationPending,
		jobDatamodel.ApplicationShortlisted,
		jobDatamodel.ApplicationRejected,
		jobDatamodel.ApplicationArchived,
	)
	if err := v.ValidateAs(internal.ErrInvalidStatus); err != nil {
		return err
	}
	return nil
}

type ReportRequest struct {
	JobPostID     string         `json:"jobPostId"`
	Filters       map[string]any `json:"filters"`
	SortBy        string         `json:"sortBy"`
	SortDirection string         `json:"sortDirection"`
}

type ReportResult struct {
	Message   string `json:"message"`
	Status    string `json:"status"`
	ReportURL string `json:"reportUrl"`
}
