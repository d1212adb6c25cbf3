package model

// CategoryAssignment links a teacher or student to a category. At most one
// row per (user, category) pair, enforced by an existence check before
// insert.
type CategoryAssignment struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	UserID     uint     `json:"user_id" gorm:"not null;index"`
	User       User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CategoryID uint     `json:"category_id" gorm:"not null;index"`
	Category   Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
}
