package tracing

import (
	"database/sql"
	"fmt"

	// Registers the "sqlite3" driver with database/sql.
	_ "github.com/mattn/go-sqlite3"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// SQLiteBackend is a Backend that batches Records into a SQLite database,
// grounded on the teacher's SQLiteTraceWriter.
type SQLiteBackend struct {
	db        *sql.DB
	statement *sql.Stmt

	path      string
	pending   []Record
	batchSize int
}

// NewSQLiteBackend creates a new SQLiteBackend. If path is empty, a fresh
// file name is generated with xid, matching the teacher's convention of
// naming each trace run's database after a generated id.
func NewSQLiteBackend(path string) *SQLiteBackend {
	if path == "" {
		path = "ssim-trace-" + xid.New().String() + ".sqlite"
	}

	return &SQLiteBackend{
		path:      path,
		batchSize: 10000,
	}
}

// Init opens the database, creates the records table, and prepares the
// insert statement used by Flush.
func (b *SQLiteBackend) Init() {
	db, err := sql.Open("sqlite3", b.path)
	if err != nil {
		panic(err)
	}
	b.db = db

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS records (
		id TEXT,
		process INTEGER,
		kind TEXT,
		time REAL,
		payload TEXT
	)`)
	if err != nil {
		panic(err)
	}

	stmt, err := db.Prepare(`INSERT INTO records (id, process, kind, time, payload) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}
	b.statement = stmt

	atexit.Register(func() { b.Flush() })
}

// Write buffers r, flushing once the batch reaches its configured size.
func (b *SQLiteBackend) Write(r Record) {
	b.pending = append(b.pending, r)
	if len(b.pending) >= b.batchSize {
		b.Flush()
	}
}

// Flush writes every buffered record to the database in one transaction.
func (b *SQLiteBackend) Flush() {
	if len(b.pending) == 0 {
		return
	}

	tx, err := b.db.Begin()
	if err != nil {
		panic(err)
	}

	for _, r := range b.pending {
		if _, err := tx.Stmt(b.statement).Exec(r.ID, r.Process, r.Kind, r.Time, r.Payload); err != nil {
			panic(fmt.Errorf("ssim: writing trace record: %w", err))
		}
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	b.pending = nil
}
