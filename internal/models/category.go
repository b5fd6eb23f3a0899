package models

import (
	"time"
)

type Category struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	SortOrder int64     `bson:"sortOrder" json:"sortOrder"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
