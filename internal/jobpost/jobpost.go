package jobpost

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/core/common/validation"
	jobDatamodel "github.com/frahmantamala/office-management/internal/core/datamodel/jobpost"
)

type (
	Post        = jobDatamodel.Post
	Application = jobDatamodel.Application
)

// CanApply reports why a post refuses applications at now, if it does.
func CanApply(p *Post, now time.Time) error {
	if p.Status != jobDatamodel.PostActive {
		return internal.ErrJobPostClosed
	}
	if p.Deadline.Before(now) {
		return internal.ErrDeadlinePassed
	}
	return nil
}

// ParseDeadline accepts RFC 3339 or a bare date, which means midnight UTC.
func ParseDeadline(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(validation.DayLayout, s)
	if err != nil {
		return time.Time{}, internal.NewValidationFieldError("deadline",
			"deadline must be an RFC 3339 timestamp or YYYY-MM-DD date", internal.ErrCodeValidationFailed)
	}
	return t, nil
}

// sortKeys maps the sort parameter to the value it orders by.
var sortKeys = map[string]func(a *Application) any{
	"age":            func(a *Application) any { return a.PersonalInfo["dateOfBirth"] },
	"gender":         func(a *Application) any { return a.PersonalInfo["gender"] },
	"prevCompany":    func(a *Application) any { return first(a.EmploymentHistory)["companyName"] },
	"education":      func(a *Application) any { return first(a.EducationalBackground)["subject"] },
	"expectedSalary": func(a *Application) any { return a.AdditionalInfo["expectedSalary"] },
}

// SortApplications orders apps by a named key. It reports false for an
// unknown key and leaves apps untouched.
func SortApplications(apps []*Application, key, direction string) bool {
	value, ok := sortKeys[key]
	if !ok {
		return false
	}
	desc := direction == "desc"
	sort.SliceStable(apps, func(i, j int) bool {
		c := compareValues(value(apps[i]), value(apps[j]))
		if desc {
			return c > 0
		}
		return c < 0
	})
	return true
}

// compareValues orders missing values first, then numbers, then text.
func compareValues(a, b any) int {
	ra, rb := rank(a), rank(b)
	if ra != rb {
		return ra - rb
	}
	switch ra {
	case 0:
		return 0
	case 1:
		fa, fb := a.(float64), b.(float64)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func rank(v any) int {
	switch v.(type) {
	case nil:
		return 0
	case float64:
		return 1
	}
	return 2
}

func first(list []map[string]any) map[string]any {
	if len(list) == 0 {
		return nil
	}
	return list[0]
}
