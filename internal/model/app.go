package model

// App 已注册应用（APP类型消费者）
type App struct {
	BaseStatus
	AppID       string  `gorm:"column:app_id;size:64;not null;uniqueIndex" json:"app_id"`
	Name        string  `gorm:"size:100;not null" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
}

func (App) TableName() string {
	return "apps"
}
