package domain

import "time"

// User представляет пользователя системы.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID       int64     `json:"id" gorm:"column:user_id;primaryKey;autoIncrement"`
	Login    string    `json:"login" gorm:"column:login"`
	Name     string    `json:"name" gorm:"column:name"`
	Email    string    `json:"email" gorm:"column:email"`
	Birthday time.Time `json:"birthday" gorm:"column:birthday;type:date"`
}

func (User) TableName() string {
	return "users"
}
