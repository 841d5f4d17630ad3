package models

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// TagArray is stored as a native text[] on postgres and as the same array
// literal in a text column elsewhere.
type TagArray []string

func (a TagArray) Value() (driver.Value, error) {
	if a == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(a).Value()
}

func (a *TagArray) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*a = TagArray(arr)
	return nil
}

func (TagArray) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// Strings never returns nil so empty tag sets encode as [].
func (a TagArray) Strings() []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}
