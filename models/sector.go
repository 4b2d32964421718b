package models

// Sector represents a plant area. The email, when present, is the recipient
// for inspection reports of that area. Sectors are denormalized as free text
// on Equipment and Operator, so deleting a sector cascades nowhere.
type Sector struct {
	ID    string `gorm:"column:sector_id;primaryKey;type:varchar(50)" json:"id"`
	Name  string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Email string `gorm:"column:email;type:varchar(100)" json:"email,omitempty"`
}
