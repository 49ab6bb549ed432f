package audit

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrimport/internal/db"
)

func TestBuildBaseQuery(t *testing.T) {
	s := &Service{}

	query, args := s.buildBaseQuery("SELECT COUNT(1)", Filter{})
	assert.Equal(t, "SELECT COUNT(1) FROM import_runs WHERE 1=1", query)
	assert.Empty(t, args)

	query, args = s.buildBaseQuery("SELECT id", Filter{Result: ResultRolledBack, Trigger: TriggerHTTP})
	assert.Equal(t, "SELECT id FROM import_runs WHERE 1=1 AND result = $1 AND trigger_source = $2", query)
	assert.Equal(t, []any{ResultRolledBack, TriggerHTTP}, args)
}

func TestRecordAndList(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	pool, err := db.Connect(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, db.Migrate(ctx, pool))

	svc := New(pool)
	batchID := uuid.NewString()
	actor := "audit-test-" + batchID
	started := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, svc.Record(ctx, Run{
		BatchID:    batchID,
		Trigger:    TriggerHTTP,
		ActorID:    actor,
		Result:     ResultRolledBack,
		Error:      "payroll: insert failed",
		StartedAt:  started,
		FinishedAt: started.Add(time.Second),
	}, map[string]int{"payrollRows": 3}))

	runs, err := svc.List(ctx, Filter{Result: ResultRolledBack, Trigger: TriggerHTTP}, true, 50, 0)
	require.NoError(t, err)

	var got *Run
	for i := range runs {
		if runs[i].ActorID == actor {
			got = &runs[i]
		}
	}
	require.NotNil(t, got)
	assert.Equal(t, batchID, got.BatchID)
	assert.Equal(t, "payroll: insert failed", got.Error)
	assert.JSONEq(t, `{"payrollRows":3}`, string(got.Summary))

	total, err := svc.Count(ctx, Filter{Result: ResultRolledBack})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, 1)

	_, err = pool.Exec(ctx, `DELETE FROM import_runs WHERE actor_id = $1`, actor)
	require.NoError(t, err)
}
