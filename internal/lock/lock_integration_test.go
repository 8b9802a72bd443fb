//go:build integration

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisLockerSuite struct {
	suite.Suite

	container testcontainers.Container
	locker    *RedisLocker
}

func TestRedisLockerSuite(t *testing.T) {
	suite.Run(t, new(RedisLockerSuite))
}

func (s *RedisLockerSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor: wait.ForLog("Ready to accept connections").
				WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err, "start redis")
	s.container = c

	host, err := c.Host(ctx)
	s.Require().NoError(err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	s.Require().NoError(err)

	s.locker = NewRedis(host+":"+port.Port(), "", 0)
	s.Require().NoError(s.locker.Ping(ctx))
}

func (s *RedisLockerSuite) TearDownSuite() {
	if s.locker != nil {
		_ = s.locker.Close()
	}
	if s.container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.container.Terminate(ctx)
	}
}

func (s *RedisLockerSuite) SetupTest() {
	s.Require().NoError(s.locker.client.FlushDB(context.Background()).Err())
}

func (s *RedisLockerSuite) TestSecondAcquireIsRefused() {
	ctx := context.Background()

	release, ok, err := s.locker.Acquire(ctx, "settlement", time.Minute)
	s.Require().NoError(err)
	s.Require().True(ok)

	_, ok, err = s.locker.Acquire(ctx, "settlement", time.Minute)
	s.Require().NoError(err)
	s.False(ok)

	// other tasks are independent
	otherRelease, ok, err := s.locker.Acquire(ctx, "missed-sweep", time.Minute)
	s.Require().NoError(err)
	s.True(ok)
	s.Require().NoError(otherRelease(ctx))

	s.Require().NoError(release(ctx))

	again, ok, err := s.locker.Acquire(ctx, "settlement", time.Minute)
	s.Require().NoError(err)
	s.True(ok)
	s.Require().NoError(again(ctx))
}

func (s *RedisLockerSuite) TestStaleReleaseKeepsNewHoldersLock() {
	ctx := context.Background()

	stale, ok, err := s.locker.Acquire(ctx, "settlement", 200*time.Millisecond)
	s.Require().NoError(err)
	s.Require().True(ok)

	s.Eventually(func() bool {
		n, err := s.locker.client.Exists(ctx, keyPrefix+"settlement").Result()
		return err == nil && n == 0
	}, 5*time.Second, 50*time.Millisecond)

	current, ok, err := s.locker.Acquire(ctx, "settlement", time.Minute)
	s.Require().NoError(err)
	s.Require().True(ok)

	// the expired holder's release must not drop the new lease
	s.Require().NoError(stale(ctx))

	n, err := s.locker.client.Exists(ctx, keyPrefix+"settlement").Result()
	s.Require().NoError(err)
	s.Equal(int64(1), n)

	_, ok, err = s.locker.Acquire(ctx, "settlement", time.Minute)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(current(ctx))
	n, err = s.locker.client.Exists(ctx, keyPrefix+"settlement").Result()
	s.Require().NoError(err)
	s.Zero(n)
}
