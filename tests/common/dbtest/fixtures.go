//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestUnit(t *testing.T, db DBLike, name, kind string, priceCents int64, capacity int32) uuid.UUID {
	t.Helper()

	unitID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO units (id, name, kind, is_active, price_cents, capacity, stock)
		 VALUES ($1, $2, $3, TRUE, $4, $5, $5)`,
		unitID, name, kind, priceCents, capacity)
	require.NoError(t, err)

	return unitID
}

func CreateTestProfile(t *testing.T, db DBLike, unitID uuid.UUID, label string) uuid.UUID {
	t.Helper()

	profileID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO profiles (id, unit_id, label) VALUES ($1, $2, $3)`,
		profileID, unitID, label)
	require.NoError(t, err)

	return profileID
}

func CreateTestMainSeat(t *testing.T, db DBLike, unitID uuid.UUID) uuid.UUID {
	t.Helper()

	seatID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		`INSERT INTO seats (id, unit_id, is_main) VALUES ($1, $2, TRUE)`,
		seatID, unitID)
	require.NoError(t, err)

	return seatID
}

func DeactivateUnit(t *testing.T, db DBLike, unitID uuid.UUID) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`UPDATE units SET is_active = FALSE WHERE id = $1`, unitID)
	require.NoError(t, err)
}

func AgeBooking(t *testing.T, db DBLike, unitID uuid.UUID, age time.Duration) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`UPDATE units SET booked_at = booked_at - make_interval(secs => $2) WHERE id = $1`,
		unitID, age.Seconds())
	require.NoError(t, err)
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables between tests
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations', 'atlas_schema_revisions')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
