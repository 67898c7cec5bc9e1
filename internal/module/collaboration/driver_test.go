package collaboration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAutoDriver_ConfirmsAfterDelay(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Share(context.Background(), "alice@example.com", 10, 2)
	require.NoError(t, err)
	req, err := f.repo.FindByTodoAndCollaborator(context.Background(), 10, 2)
	require.NoError(t, err)
	require.NotNil(t, req)

	driver := NewAutoDriver(f.service, 5*time.Millisecond, zap.NewNop())
	driver.AfterDelivery(context.Background(), &Notification{
		CollaboratorEmail: "bob@example.com",
		CollaboratorID:    2,
		TodoID:            10,
		Token:             req.Token,
	})

	assert.Eventually(t, func() bool {
		left, err := f.repo.FindByTodoAndCollaborator(context.Background(), 10, 2)
		return err == nil && left == nil
	}, time.Second, 10*time.Millisecond)
}

func TestAutoDriver_SkipsWhenContextCancelled(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.service.Share(context.Background(), "alice@example.com", 10, 2)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	driver := NewAutoDriver(f.service, time.Minute, zap.NewNop())
	driver.AfterDelivery(ctx, &Notification{CollaboratorEmail: "bob@example.com", CollaboratorID: 2, TodoID: 10})

	time.Sleep(20 * time.Millisecond)
	req, err := f.repo.FindByTodoAndCollaborator(context.Background(), 10, 2)
	require.NoError(t, err)
	assert.NotNil(t, req)
}

func TestManualDriver_DoesNothing(t *testing.T) {
	ManualDriver{}.AfterDelivery(context.Background(), &Notification{})
}
