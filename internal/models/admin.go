package models

// Admin is a back-office account. There is no signup flow; rows are seeded
// out of band and only ever read for login comparison.
type Admin struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"type:varchar(100);not null;uniqueIndex" json:"username"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`
}

func (Admin) TableName() string {
	return "admin"
}
