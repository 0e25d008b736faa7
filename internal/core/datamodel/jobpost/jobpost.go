package jobpost

import (
	"time"

	"github.com/frahmantamala/office-management/internal/store"
)

const (
	CollectionPosts        = "job_posts"
	CollectionApplications = "job_applications"
)

const (
	PostActive   = "active"
	PostClosed   = "closed"
	PostArchived = "archived"

	ApplicationPending     = "pending"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
	ApplicationArchived    = "archived"
)

// FieldApplications is the stored name of the post's application counter.
const FieldApplications = "applications"

var (
	PostIndexes = []store.Index{
		{Keys: []string{"status", "deadline"}},
		{Keys: []string{"posted_by_email"}},
	}
	ApplicationIndexes = []store.Index{
		{Keys: []string{"job_post_id"}},
	}
)

type Post struct {
	store.Model   `bson:",inline"`
	Title         string           `json:"title" bson:"title" gorm:"column:title"`
	Description   string           `json:"description" bson:"description" gorm:"column:description"`
	CustomFields  []map[string]any `json:"customFields" bson:"custom_fields" gorm:"column:custom_fields;serializer:json"`
	Deadline      time.Time        `json:"deadline" bson:"deadline" gorm:"column:deadline"`
	PostedBy      string           `json:"postedBy" bson:"posted_by" gorm:"column:posted_by"`
	PostedByEmail string           `json:"postedByEmail" bson:"posted_by_email" gorm:"column:posted_by_email;size:255"`
	PostedByRole  string           `json:"postedByRole" bson:"posted_by_role" gorm:"column:posted_by_role"`
	Status        string           `json:"status" bson:"status" gorm:"column:status"`
	Applications  int              `json:"applications" bson:"applications" gorm:"column:applications"`
}

type Application struct {
	store.Model             `bson:",inline"`
	JobPostID               string           `json:"jobPostId" bson:"job_post_id" gorm:"column:job_post_id;size:24"`
	JobTitle                string           `json:"jobTitle" bson:"job_title" gorm:"column:job_title"`
	Status                  string           `json:"status" bson:"status" gorm:"column:status"`
	PersonalInfo            map[string]any   `json:"personalInfo" bson:"personal_info" gorm:"column:personal_info;serializer:json"`
	EducationalBackground   []map[string]any `json:"educationalBackground" bson:"educational_background" gorm:"column:educational_background;serializer:json"`
	EmploymentHistory       []map[string]any `json:"employmentHistory" bson:"employment_history" gorm:"column:employment_history;serializer:json"`
	SkillsAndCertifications map[string]any   `json:"skillsAndCertifications" bson:"skills_and_certifications" gorm:"column:skills_and_certifications;serializer:json"`
	References              []map[string]any `json:"references" bson:"references" gorm:"column:references;serializer:json"`
	AdditionalInfo          map[string]any   `json:"additionalInfo" bson:"additional_info" gorm:"column:additional_info;serializer:json"`
	ContactNumber           string           `json:"contactNumber" bson:"contact_number" gorm:"column:contact_number"`
	AppliedAt               time.Time        `json:"appliedAt" bson:"applied_at" gorm:"column:applied_at"`
}
