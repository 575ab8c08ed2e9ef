package jobs

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"tomgalvin.uk/escposimage/internal/escpos"
)

func aRepository(t *testing.T) *Repository {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	r := &Repository{Db: db}
	require.NoError(t, r.Init())
	t.Cleanup(func() { r.Close() })
	return r
}

func aJob(name string) *Job {
	cmds := []escpos.Command{
		escpos.SetLineSpacing(16),
		{Header: []byte{escpos.Esc, '*', 33, 2, 0}, Payload: make([]byte, 6), Trailer: []byte{escpos.LF}},
		escpos.ResetLineSpacing(),
	}
	return NewJob(name, escpos.ColumnFormat, escpos.EncodingConfig{HighDensityVertical: true}, 2, 1, cmds)
}

func enqueue(t *testing.T, r *Repository, j *Job) {
	t.Helper()
	require.NoError(t, r.Transact(func(tx *sql.Tx) error {
		return r.Create(tx, j)
	}))
}

func TestCreateAndGet(t *testing.T) {
	r := aRepository(t)
	j := aJob("tulips.png")
	enqueue(t, r, j)
	require.NotZero(t, j.Id)

	got, err := r.Get(j.Uuid)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, j.Uuid, got.Uuid)
	require.Equal(t, "tulips.png", got.Name)
	require.Equal(t, escpos.ColumnFormat, got.Format)
	require.Equal(t, j.Config, got.Config)
	require.Equal(t, 2, got.Width)
	require.Equal(t, 1, got.Height)
	require.Equal(t, j.Data, got.Data)
	require.Equal(t, len(j.Data), got.Size)
	require.Equal(t, j.CreatedAt.UnixMilli(), got.CreatedAt.UnixMilli())
	require.False(t, got.Sent())
}

func TestGetMissing(t *testing.T) {
	r := aRepository(t)
	got, err := r.Get(uuid.New())
	require.NoError(t, err)
	require.Nil(t, got)

	next, err := r.NextPending()
	require.NoError(t, err)
	require.Nil(t, next)
}

func TestListAndMarkSent(t *testing.T) {
	r := aRepository(t)
	first, second := aJob("first"), aJob("second")
	second.CreatedAt = first.CreatedAt.Add(time.Second)
	enqueue(t, r, first)
	enqueue(t, r, second)

	all, err := r.List(false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "first", all[0].Name)
	require.Nil(t, all[0].Data)

	next, err := r.NextPending()
	require.NoError(t, err)
	require.Equal(t, first.Uuid, next.Uuid)

	sentAt := time.UnixMilli(1700000000000)
	require.NoError(t, r.Transact(func(tx *sql.Tx) error {
		return r.MarkSent(tx, first.Uuid, sentAt)
	}))

	pending, err := r.List(true)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, second.Uuid, pending[0].Uuid)

	got, err := r.Get(first.Uuid)
	require.NoError(t, err)
	require.True(t, got.Sent())
	require.True(t, sentAt.Equal(*got.SentAt))
}

func TestDelete(t *testing.T) {
	r := aRepository(t)
	j := aJob("doomed")
	enqueue(t, r, j)

	require.NoError(t, r.Transact(func(tx *sql.Tx) error {
		return r.Delete(tx, j.Uuid)
	}))
	got, err := r.Get(j.Uuid)
	require.NoError(t, err)
	require.Nil(t, got)

	err = r.Transact(func(tx *sql.Tx) error {
		return r.Delete(tx, j.Uuid)
	})
	require.ErrorIs(t, err, ErrNoSuchJob)
}

func TestTransactRollsBack(t *testing.T) {
	r := aRepository(t)
	j := aJob("rolled back")

	err := r.Transact(func(tx *sql.Tx) error {
		if err := r.Create(tx, j); err != nil {
			return err
		}
		return r.MarkSent(tx, uuid.New(), time.Now())
	})
	require.ErrorIs(t, err, ErrNoSuchJob)

	all, err := r.List(false)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestCorruptDataIsRejected(t *testing.T) {
	r := aRepository(t)
	j := aJob("corrupt")
	enqueue(t, r, j)

	_, err := r.Db.Exec(`UPDATE print_queue SET data = ? WHERE uuid = ?`, compress([]byte("not the job")), j.Uuid.String())
	require.NoError(t, err)
	_, err = r.Get(j.Uuid)
	require.ErrorIs(t, err, ErrChecksumMismatch)

	_, err = r.Db.Exec(`UPDATE print_queue SET data = ? WHERE uuid = ?`, []byte("garbage"), j.Uuid.String())
	require.NoError(t, err)
	_, err = r.Get(j.Uuid)
	require.Error(t, err)
}

func TestCompressRoundTrip(t *testing.T) {
	data := make([]byte, 4096)
	data[100] = 0xFF

	compressed := compress(data)
	require.Less(t, len(compressed), len(data))

	out, err := decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, data, out)
	require.NoError(t, verify(out, checksum(data)))
}
