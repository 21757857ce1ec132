package models

import "time"

// User is an account that can sign in and own orders.
type User struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;type:varchar(255);not null"`
	Phone       *string   `gorm:"column:phone;type:varchar(255);uniqueIndex:uq_users_phone"`
	Username    string    `gorm:"column:username;type:varchar(255);not null;uniqueIndex:uq_users_username"`
	Designation *string   `gorm:"column:designation;type:varchar(255)"`
	Email       *string   `gorm:"column:email;type:varchar(255);uniqueIndex:uq_users_email"`
	Password    string    `gorm:"column:password;type:varchar(255);not null"`
	IsAdmin     bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (User) TableName() string { return "users" }
