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

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()
	return createUser(t, db, email, role, false)
}

func CreateTestNFTHolder(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()
	return createUser(t, db, email, "user", true)
}

func createUser(t *testing.T, db DBLike, email, role string, nftHolder bool) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email, password_hash, role, nft_holder, is_active) VALUES ($1, $2, $3, $4, $5, true) ON CONFLICT (email) DO NOTHING",
		userID, email, testPasswordHash, role, nftHolder)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

func CreateTestWorkspace(t *testing.T, db DBLike, name string, hourlyRateCents int64) uuid.UUID {
	t.Helper()

	workspaceID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO workspaces (id, name, hourly_rate_cents, capacity) VALUES ($1, $2, $3, 4)",
		workspaceID, name, hourlyRateCents)
	require.NoError(t, err)

	return workspaceID
}

func CreateTestMenuItem(t *testing.T, db DBLike, name string, priceCents int64, available bool) uuid.UUID {
	t.Helper()

	itemID := uuid.New()
	ctx := context.Background()

	_, err := db.Exec(ctx,
		"INSERT INTO menu_items (id, name, category, price_cents, available) VALUES ($1, $2, 'drinks', $3, $4)",
		itemID, name, priceCents, available)
	require.NoError(t, err)

	return itemID
}

// inserts a booking directly, bypassing the pricing pipeline. The money
// columns are derived from the slot length at a flat rate so state
// transitions can be tested against known amounts.
func CreateTestBooking(t *testing.T, db DBLike, workspaceID, userID uuid.UUID, start, end time.Time, status string) uuid.UUID {
	t.Helper()

	bookingID := uuid.New()
	ctx := context.Background()

	hours := end.Sub(start).Hours()
	subtotal := int64(hours * 1500)
	fee := (subtotal*29+500)/1000 + 30
	code := "CWH-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])

	_, err := db.Exec(ctx, `
		INSERT INTO bookings (
			id, user_id, workspace_id, confirmation_code, booking_date,
			start_time, end_time, status,
			subtotal_cents, processing_fee_cents, total_price_cents, nft_discount_applied
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false)`,
		bookingID, userID, workspaceID, code, start.Truncate(24*time.Hour),
		start, end, status, subtotal, fee, subtotal+fee)
	require.NoError(t, err)

	return bookingID
}

func MarkBookingCheckedIn(t *testing.T, db DBLike, bookingID uuid.UUID, at time.Time) {
	t.Helper()

	ctx := context.Background()
	_, err := db.Exec(ctx,
		"UPDATE bookings SET status = 'checked_in', check_in_time = $2 WHERE id = $1",
		bookingID, at)
	require.NoError(t, err)
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO menu_items (id, name, category, price_cents, available) VALUES
		    (gen_random_uuid(), 'Espresso', 'drinks', 300, true),
		    (gen_random_uuid(), 'Flat White', 'drinks', 450, true),
		    (gen_random_uuid(), 'Croissant', 'food', 380, true),
		    (gen_random_uuid(), 'Seasonal Special', 'drinks', 520, false);
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
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

	return SeedReferenceData(pool)
}
