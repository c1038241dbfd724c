package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/kintai-backend-go/internal/pkg/database"
)

const schemaFile = "../../../../migrations/001_init.sql"

// TestDatabaseSetup wraps the integration test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	setup := &TestDatabaseSetup{DB: db}
	t.Cleanup(setup.Close)

	schema, err := os.ReadFile(schemaFile)
	if err != nil {
		t.Fatalf("failed to read schema: %v", err)
	}
	if _, err := db.Exec(ctx, string(schema)); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatalf("%v", err)
	}
	return setup
}

// TruncateAllTables removes every row from the schema tables.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"daily_report_sections",
		"daily_report_posts",
		"reimbursements",
		"settlements",
		"attendances",
		"approval_events",
		"approvals",
		"holidays",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// SeedEmployee inserts an active employee.
func (t *TestDatabaseSetup) SeedEmployee(ctx context.Context, id, name string) error {
	_, err := t.DB.Exec(ctx,
		`INSERT INTO employees (id, full_name, is_active) VALUES ($1, $2, TRUE)`, id, name)
	return err
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
