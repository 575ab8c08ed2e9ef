package jobs

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"tomgalvin.uk/escposimage/internal/escpos"
)

//go:embed schema.sql
var schema string

type Repository struct {
	Db *sql.DB
}

// Creates the queue tables if they don't exist yet
func (r *Repository) Init() error {
	if _, err := r.Db.Exec(schema); err != nil {
		return fmt.Errorf("Couldn't initialise database:\n%w", err)
	}
	return nil
}

func (r *Repository) Close() error {
	return r.Db.Close()
}

const jobColumns = `id, uuid, name, format, high_density_horizontal, high_density_vertical,
  width, height, created_at, sent_at, size`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(s scanner, extra ...any) (*Job, error) {
	var j Job
	var uuidString, format string
	var createdAt int64
	var sentAt sql.NullInt64

	dest := []any{
		&j.Id, &uuidString, &j.Name, &format,
		&j.Config.HighDensityHorizontal, &j.Config.HighDensityVertical,
		&j.Width, &j.Height, &createdAt, &sentAt, &j.Size,
	}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	u, err := uuid.Parse(uuidString)
	if err != nil {
		return nil, fmt.Errorf("Job %v has an invalid UUID:\n%w", j.Id, err)
	}
	j.Uuid = u
	j.Format = escpos.Format(format)
	j.CreatedAt = time.UnixMilli(createdAt)
	if sentAt.Valid {
		t := time.UnixMilli(sentAt.Int64)
		j.SentAt = &t
	}
	return &j, nil
}

// Reads a single job including its data. Returns nil if there's no such job.
func (r *Repository) readJob(query string, args ...any) (*Job, error) {
	row := r.Db.QueryRow(`SELECT `+jobColumns+`, checksum, data FROM print_queue `+query, args...)

	var sum int64
	var compressed []byte
	j, err := scanJob(row, &sum, &compressed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("Failed to read job:\n%w", err)
	}

	if j.Data, err = decompress(compressed); err != nil {
		return nil, fmt.Errorf("Couldn't decompress data for job %s:\n%w", j.Uuid, err)
	}
	if err := verify(j.Data, sum); err != nil {
		return nil, fmt.Errorf("Data for job %s is corrupt:\n%w", j.Uuid, err)
	}
	return j, nil
}

func (r *Repository) Get(u uuid.UUID) (*Job, error) {
	return r.readJob(`WHERE uuid = ?`, u.String())
}

// Oldest job that hasn't been sent yet, or nil if the queue is empty
func (r *Repository) NextPending() (*Job, error) {
	return r.readJob(`WHERE sent_at IS NULL ORDER BY created_at, id LIMIT 1`)
}

// Lists jobs oldest first, without their data
func (r *Repository) List(pendingOnly bool) ([]Job, error) {
	query := `SELECT ` + jobColumns + ` FROM print_queue`
	if pendingOnly {
		query += ` WHERE sent_at IS NULL`
	}
	rows, err := r.Db.Query(query + ` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("Query execution failed:\n%w", err)
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("Row scanning failed:\n%w", err)
		}
		jobs = append(jobs, *j)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Error iterating rows:\n%w", err)
	}

	return jobs, nil
}

// Run operations in a transaction, committing afterward, or rolling back if the
// passed function returns an error
func (r *Repository) Transact(f func(*sql.Tx) error) error {
	tx, err := r.Db.Begin()
	if err != nil {
		return err
	}

	err = f(tx)
	if err != nil {
		err2 := tx.Rollback()
		if err2 != nil {
			return fmt.Errorf("Failed to roll back transaction: %w\n\nAfter handling: %v", err2, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction:\n%w", err)
	}
	return nil
}

func (r *Repository) Create(tx *sql.Tx, j *Job) error {
	j.Size = len(j.Data)
	row := tx.QueryRow(`
    INSERT INTO print_queue(uuid, name, format, high_density_horizontal, high_density_vertical,
      width, height, created_at, size, checksum, data)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    RETURNING id`,
		j.Uuid.String(), j.Name, string(j.Format),
		j.Config.HighDensityHorizontal, j.Config.HighDensityVertical,
		j.Width, j.Height, j.CreatedAt.UnixMilli(), j.Size,
		checksum(j.Data), compress(j.Data))
	if err := row.Scan(&j.Id); err != nil {
		return fmt.Errorf("Failed to insert into print_queue:\n%w", err)
	}
	return nil
}

func (r *Repository) MarkSent(tx *sql.Tx, u uuid.UUID, at time.Time) error {
	res, err := tx.Exec(`UPDATE print_queue SET sent_at = ? WHERE uuid = ?`, at.UnixMilli(), u.String())
	if err != nil {
		return fmt.Errorf("Couldn't mark job as sent:\n%w", err)
	}
	return expectOneRow(res, u)
}

func (r *Repository) Delete(tx *sql.Tx, u uuid.UUID) error {
	res, err := tx.Exec(`DELETE FROM print_queue WHERE uuid = ?`, u.String())
	if err != nil {
		return fmt.Errorf("Couldn't delete job:\n%w", err)
	}
	return expectOneRow(res, u)
}

var ErrNoSuchJob = errors.New("No such job")

func expectOneRow(res sql.Result, u uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w with UUID %s", ErrNoSuchJob, u.String())
	}
	return nil
}
