package document

import "time"

type Document struct {
	ID         int64     `gorm:"primaryKey"`
	Title      string    `gorm:"column:title;not null"`
	Format     string    `gorm:"column:format;not null"`
	PathURL    string    `gorm:"column:path_url;not null"`
	CategoryID *int64    `gorm:"column:category_id;index"`
	UserID     int64     `gorm:"column:user_id;not null;index"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Document) TableName() string {
	return "documents"
}
