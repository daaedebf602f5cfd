package models

import "moviehub/proj/internal/storage/postgres"

type Models struct {
	User *UserModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		User: &UserModel{db.Conn},
	}
}
