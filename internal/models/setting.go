package models

// Setting is one key/value row of the flat site configuration exposed to the
// storefront (contact numbers, social links, hero copy and so on).
type Setting struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SettingKey   string `gorm:"type:varchar(100);not null;uniqueIndex" json:"setting_key"`
	SettingValue string `gorm:"type:text" json:"setting_value"`
}

func (Setting) TableName() string {
	return "settings"
}
