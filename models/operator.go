package models

// Operator represents an employee who performs inspections. The ID is the
// badge number printed on the employee card.
type Operator struct {
	ID     string `gorm:"column:operator_id;primaryKey;type:varchar(50)" json:"id"`
	Name   string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Role   string `gorm:"column:role;type:varchar(100)" json:"role"`
	Sector string `gorm:"column:sector;type:varchar(100)" json:"sector"`
}
