package main

import (
	"database/sql"
	"fmt"

	"tomgalvin.uk/escposimage/internal/jobs"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const defaultDatabase = "escposimage.db"

func NewRepository(path string) (*jobs.Repository, error) {
	db, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open database:\n%w", err)
	}

	r := &jobs.Repository{Db: db}
	if err := r.Init(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}
