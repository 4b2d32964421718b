package models

import "time"

// Accepted answers for a checklist item.
const (
	AnswerYes = "Sim"
	AnswerNo  = "Não"
	AnswerNA  = "N/A"
)

// ChecklistItem is one question of the fixed inspection template. Answer is
// nil until the operator responds.
type ChecklistItem struct {
	ID       int     `json:"id"`
	Question string  `json:"question"`
	Answer   *string `json:"answer"`
}

// Checklist is one completed inspection, submitted once and never updated.
// KPNumber duplicates EquipmentNumber and is kept for compatibility with
// records produced by older clients.
type Checklist struct {
	ID              uint            `gorm:"column:checklist_id;primaryKey;autoIncrement" json:"id,omitempty"`
	EquipmentNumber string          `gorm:"column:equipment_number;type:varchar(50);not null" json:"equipmentNumber"`
	OperatorName    string          `gorm:"column:operator_name;type:varchar(100);not null" json:"operatorName"`
	OperatorID      string          `gorm:"column:operator_id;type:varchar(50)" json:"operatorId,omitempty"`
	Equipment       string          `gorm:"column:equipment;type:varchar(100)" json:"equipment"`
	KPNumber        string          `gorm:"column:kp_number;type:varchar(50)" json:"kpNumber"`
	Sector          string          `gorm:"column:sector;type:varchar(100)" json:"sector"`
	Capacity        string          `gorm:"column:capacity;type:varchar(50)" json:"capacity"`
	Items           []ChecklistItem `gorm:"column:items;serializer:json" json:"items"`
	Signature       string          `gorm:"column:signature;type:text" json:"signature,omitempty"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt,omitempty"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt,omitempty"`
}

// Answered reports whether every item carries a response. A submission is
// rejected while any item is still open.
func (c *Checklist) Answered() bool {
	if len(c.Items) == 0 {
		return false
	}
	for _, item := range c.Items {
		if item.Answer == nil || *item.Answer == "" {
			return false
		}
	}
	return true
}

// ChecklistHistory is the denormalized read model of a submission, as shown
// on the history screen and stored in the local buffer. Date is RFC 3339.
type ChecklistHistory struct {
	ID            string          `gorm:"column:history_id;primaryKey;type:varchar(64)" json:"id"`
	EquipmentID   string          `gorm:"column:equipment_id;type:varchar(50)" json:"equipmentId"`
	EquipmentName string          `gorm:"column:equipment_name;type:varchar(100)" json:"equipmentName"`
	OperatorID    string          `gorm:"column:operator_id;type:varchar(50)" json:"operatorId"`
	OperatorName  string          `gorm:"column:operator_name;type:varchar(100)" json:"operatorName"`
	Sector        string          `gorm:"column:sector;type:varchar(100)" json:"sector"`
	Date          string          `gorm:"column:date;type:varchar(40)" json:"date"`
	Items         []ChecklistItem `gorm:"column:items;serializer:json" json:"items"`
	Signature     string          `gorm:"column:signature;type:text" json:"signature,omitempty"`
}

// HistoryFromChecklist projects a submission into its history read model.
func HistoryFromChecklist(id string, c *Checklist, date time.Time) ChecklistHistory {
	return ChecklistHistory{
		ID:            id,
		EquipmentID:   c.EquipmentNumber,
		EquipmentName: c.Equipment,
		OperatorID:    c.OperatorID,
		OperatorName:  c.OperatorName,
		Sector:        c.Sector,
		Date:          date.UTC().Format(time.RFC3339),
		Items:         c.Items,
		Signature:     c.Signature,
	}
}
