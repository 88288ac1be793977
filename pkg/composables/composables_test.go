package composables_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreen-centers/evergreen/pkg/authz"
	"github.com/evergreen-centers/evergreen/pkg/composables"
)

func TestUsePool_Missing(t *testing.T) {
	t.Parallel()

	_, err := composables.UsePool(context.Background())
	require.ErrorIs(t, err, composables.ErrNoPool)

	_, err = composables.UseTx(context.Background())
	require.ErrorIs(t, err, composables.ErrNoPool)
}

func TestInTx_RunsDirectlyWithoutPool(t *testing.T) {
	t.Parallel()

	called := false
	err := composables.InTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)

	wantErr := errors.New("boom")
	err = composables.InTx(context.Background(), func(ctx context.Context) error {
		return wantErr
	})
	require.ErrorIs(t, err, wantErr)
}

func TestInTxResult_PropagatesValue(t *testing.T) {
	t.Parallel()

	got, err := composables.InTxResult(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestActor_RoundTrip(t *testing.T) {
	t.Parallel()

	_, err := composables.UseActor(context.Background())
	require.ErrorIs(t, err, composables.ErrNoActor)

	actor := authz.Actor{
		ID:       uuid.New(),
		Name:     "Dana Reyes",
		Role:     authz.RoleCorporateAdmin,
		Facility: authz.FacilityOrganization,
	}
	ctx := composables.WithActor(context.Background(), actor)
	got, err := composables.UseActor(ctx)
	require.NoError(t, err)
	assert.Equal(t, actor, got)
}

func TestUseLogger_FallsBack(t *testing.T) {
	t.Parallel()

	entry := composables.UseLogger(context.Background())
	require.NotNil(t, entry)

	custom := logrus.New().WithField("request_id", "abc")
	ctx := composables.WithLogger(context.Background(), custom)
	assert.Same(t, custom, composables.UseLogger(ctx))
}
