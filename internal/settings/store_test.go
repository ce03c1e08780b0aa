package settings

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type RedisStoreTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	store  *RedisStore
}

func (s *RedisStoreTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.store = NewRedisStore(s.client)
}

func (s *RedisStoreTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisStoreTestSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) TestGetMissingProfile() {
	data, err := s.store.Get(context.Background(), "nobody")
	s.Require().NoError(err)
	s.Nil(data)
}

func (s *RedisStoreTestSuite) TestPutAndGet() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, "default", []byte(`{"sound":false}`)))

	raw, err := s.mr.Get("settings:default")
	s.Require().NoError(err)
	s.Equal(`{"sound":false}`, raw)
	s.Zero(s.mr.TTL("settings:default"), "settings never expire")

	data, err := s.store.Get(ctx, "default")
	s.Require().NoError(err)
	s.JSONEq(`{"sound":false}`, string(data))
}

func (s *RedisStoreTestSuite) TestManagerRoundTrip() {
	ctx := context.Background()
	m := NewManager(s.store, ManagerOptions{}, zerolog.Nop())

	_, err := m.SetNumRounds(ctx, 15)
	s.Require().NoError(err)
	_, err = m.ToggleNeon(ctx)
	s.Require().NoError(err)

	reloaded := NewManager(s.store, ManagerOptions{}, zerolog.Nop())
	got, err := reloaded.Load(ctx)
	s.Require().NoError(err)
	s.Equal(Settings{NeonTheme: true, Sound: true, NumRounds: 15}, got)
}

func (s *RedisStoreTestSuite) TestUnavailableRedis() {
	down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	defer down.Close()
	m := NewManager(NewRedisStore(down), ManagerOptions{}, zerolog.Nop())

	got, err := m.Load(context.Background())
	s.Error(err)
	s.Equal(Defaults(), got)

	toggled, err := m.ToggleSound(context.Background())
	s.Error(err)
	s.False(toggled.Sound, "change applies in memory even when the save fails")
	s.False(m.SoundEnabled())
}
