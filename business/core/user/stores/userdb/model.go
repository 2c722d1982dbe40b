package userdb

import (
	"time"

	"github.com/zaplanje/coin/business/core/user"
)

// dbUser represent the structure we need for moving data
// between the app and the database.
type dbUser struct {
	ID           string    `gorm:"column:user_id;primaryKey"`
	Email        string    `gorm:"column:email"`
	PasswordHash []byte    `gorm:"column:password_hash"`
	DateCreated  time.Time `gorm:"column:date_created"`
	DateUpdated  time.Time `gorm:"column:date_updated"`
}

func (dbUser) TableName() string {
	return "users"
}

func toDBUser(usr user.User) dbUser {
	return dbUser{
		ID:           usr.ID,
		Email:        usr.Email,
		PasswordHash: usr.PasswordHash,
		DateCreated:  usr.DateCreated.UTC(),
		DateUpdated:  usr.DateUpdated.UTC(),
	}
}

func toCoreUser(dbUsr dbUser) user.User {
	return user.User{
		ID:           dbUsr.ID,
		Email:        dbUsr.Email,
		PasswordHash: dbUsr.PasswordHash,
		DateCreated:  dbUsr.DateCreated.In(time.Local),
		DateUpdated:  dbUsr.DateUpdated.In(time.Local),
	}
}
