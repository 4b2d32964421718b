package models

// Equipment represents a liftable asset that operators inspect before use
type Equipment struct {
	ID       string `gorm:"column:equipment_id;primaryKey;type:varchar(50)" json:"id"`
	Name     string `gorm:"column:name;type:varchar(100);not null" json:"name"`
	Type     string `gorm:"column:type;type:varchar(50)" json:"type"`
	Capacity string `gorm:"column:capacity;type:varchar(50)" json:"capacity"`
	Sector   string `gorm:"column:sector;type:varchar(100)" json:"sector"`
}
