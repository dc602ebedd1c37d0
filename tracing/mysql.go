package tracing

import (
	"database/sql"

	// Registers the "mysql" driver with database/sql.
	_ "github.com/go-sql-driver/mysql"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// MySQLBackend is a Backend that batches Records into a MySQL database,
// grounded on the teacher's MySQLTraceWriter (tracing/mysql.go): connect
// with a DSN, create a run-scoped database, create the table, batch
// inserts, flush on exit.
type MySQLBackend struct {
	db *sql.DB

	dsn       string
	dbName    string
	pending   []Record
	batchSize int
}

// NewMySQLBackend creates a new MySQLBackend. dsn is a database/sql data
// source name for the server (without a database name component); each
// run creates and uses its own database, named with a generated id.
func NewMySQLBackend(dsn string) *MySQLBackend {
	return &MySQLBackend{
		dsn:       dsn,
		dbName:    "ssim_trace_" + xid.New().String(),
		batchSize: 10000,
	}
}

// Init connects to the server and creates this run's database and table.
func (b *MySQLBackend) Init() {
	db, err := sql.Open("mysql", b.dsn)
	if err != nil {
		panic(err)
	}
	b.db = db

	b.mustExec("CREATE DATABASE IF NOT EXISTS " + b.dbName)
	b.mustExec("USE " + b.dbName)
	b.mustExec(`CREATE TABLE IF NOT EXISTS records (
		id VARCHAR(32),
		process INT,
		kind VARCHAR(16),
		time DOUBLE,
		payload TEXT
	)`)

	atexit.Register(func() { b.Flush() })
}

func (b *MySQLBackend) mustExec(query string) {
	if _, err := b.db.Exec(query); err != nil {
		panic(err)
	}
}

// Write buffers r, flushing once the batch reaches its configured size.
func (b *MySQLBackend) Write(r Record) {
	b.pending = append(b.pending, r)
	if len(b.pending) >= b.batchSize {
		b.Flush()
	}
}

// Flush writes every buffered record to the database.
func (b *MySQLBackend) Flush() {
	if len(b.pending) == 0 {
		return
	}

	stmt, err := b.db.Prepare(`INSERT INTO records (id, process, kind, time, payload) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}
	defer stmt.Close()

	for _, r := range b.pending {
		if _, err := stmt.Exec(r.ID, r.Process, r.Kind, r.Time, r.Payload); err != nil {
			panic(err)
		}
	}

	b.pending = nil
}
