package roster_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrimport/internal/db"
	"hrimport/internal/domain/payroll"
	"hrimport/internal/domain/roster"
	cryptoutil "hrimport/internal/platform/crypto"
)

func TestStoreAgainstPostgres(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := db.Connect(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, db.Migrate(ctx, pool))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	crypto, err := cryptoutil.New(strings.Repeat("ab", 32))
	require.NoError(t, err)
	store := roster.NewStore(tx, crypto)
	engine := roster.NewEngine(store, "00000000-0000-0000-0000-000000000001",
		roster.WithClock(func() time.Time { return fixedNow }))

	rec := onboardingRecord()
	rec.Email = "integration-" + time.Now().Format("150405.000000") + "@example.com"
	first, err := engine.UpsertOnboarding(ctx, rec)
	require.NoError(t, err)
	second, err := engine.UpsertOnboarding(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	var history int
	require.NoError(t, tx.QueryRow(ctx, `SELECT COUNT(1) FROM employee_status_history WHERE employee_id = $1`, first).Scan(&history))
	assert.Equal(t, 2, history)

	var plain *string
	var enc []byte
	require.NoError(t, tx.QueryRow(ctx, `
    SELECT id_value, id_value_enc FROM employee_identifiers WHERE employee_id = $1 AND id_type = 'SIN'
  `, first).Scan(&plain, &enc))
	assert.Nil(t, plain)
	sin, err := crypto.DecryptString(enc)
	require.NoError(t, err)
	assert.Equal(t, "046 454 286", sin)

	hint := payroll.PeriodHint{Name: "integration " + rec.Email}
	period, err := engine.Period(ctx, hint)
	require.NoError(t, err)
	again, err := engine.GetOrCreatePeriod(ctx, hint)
	require.NoError(t, err)
	assert.Equal(t, period.ID, again)

	require.NoError(t, engine.ImportPayrollRow(ctx, period, payroll.Row{
		FirstName: rec.FirstName, LastName: rec.LastName,
		Rate: decimal.RequireFromString("21.75"), PayrollHours: decimal.NewFromInt(80),
	}))
	var rate decimal.Decimal
	require.NoError(t, tx.QueryRow(ctx, `
    SELECT regular_rate FROM payroll_calculations WHERE period_id = $1
  `, period.ID).Scan(&rate))
	assert.True(t, rate.Equal(decimal.RequireFromString("21.75")))
}
