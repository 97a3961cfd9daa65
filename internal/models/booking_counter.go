package models

// BookingCounter backs the application-number sequence. The value is
// only ever advanced with an atomic in-database increment.
type BookingCounter struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Value uint64 `gorm:"not null;default:0" json:"value"`
}
