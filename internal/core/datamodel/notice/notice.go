package notice

import (
	"time"

	"github.com/frahmantamala/office-management/internal/store"
)

const Collection = "notices"

var Indexes = []store.Index{
	{Keys: []string{"audience"}},
}

type Notice struct {
	store.Model   `bson:",inline"`
	Title         string     `json:"title" bson:"title" gorm:"column:title"`
	Content       string     `json:"content" bson:"content" gorm:"column:content"`
	PostedBy      string     `json:"postedBy" bson:"posted_by" gorm:"column:posted_by"`
	PostedByEmail string     `json:"postedByEmail" bson:"posted_by_email" gorm:"column:posted_by_email;size:255"`
	Audience      string     `json:"audience" bson:"audience" gorm:"column:audience"`
	Priority      string     `json:"priority" bson:"priority" gorm:"column:priority"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" bson:"expires_at,omitempty" gorm:"column:expires_at"`
}
