package models

import "gorm.io/gorm"

type Amenity struct {
	gorm.Model
	Name        string `gorm:"size:255;uniqueIndex;not null"`
	Description string `gorm:"type:text"`
}
