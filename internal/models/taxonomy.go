package models

// Category, Cuisine and Diet are independent lookup tables. Category is a
// required reference on Recipe, Cuisine optional, Diet many-to-many.

type Category struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

type Cuisine struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

type Diet struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}
