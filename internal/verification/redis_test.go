package verification

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, client.Ping(context.Background()).Err())
	return client, mr
}

func TestRedisStore_IssueAndVerify(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, 0)
	ctx := context.Background()

	code, err := store.Issue(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, code, 6)
	assert.True(t, mr.Exists("verification:a@x.com"))
	assert.Equal(t, DefaultTTL, mr.TTL("verification:a@x.com"))

	ok, err := store.Verify(ctx, "a@x.com", " "+code+" ")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, mr.Exists("verification:a@x.com"), "code should be consumed")

	ok, err = store.Verify(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.False(t, ok, "second verify should fail")
}

func TestRedisStore_WrongCodeKeepsEntry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	store.newCode = func() (string, error) { return "123456", nil }
	ctx := context.Background()

	_, err := store.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "a@x.com", "000000")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("verification:a@x.com"))

	ok, err = store.Verify(ctx, "a@x.com", "123456")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_Expiry(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	mr.FastForward(time.Minute + time.Second)

	ok, err := store.Verify(ctx, "a@x.com", code)
	require.NoError(t, err)
	assert.False(t, ok, "expired code should not verify")
}

func TestRedisStore_ReissueInvalidatesPrevious(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	codes := []string{"111111", "222222"}
	store.newCode = func() (string, error) {
		c := codes[0]
		codes = codes[1:]
		return c, nil
	}
	ctx := context.Background()

	c1, err := store.Issue(ctx, "k")
	require.NoError(t, err)
	c2, err := store.Issue(ctx, "k")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "k", c1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = store.Verify(ctx, "k", c2)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisStore_ConcurrentVerifyHasOneWinner(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "a@x.com")
	require.NoError(t, err)

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.Verify(ctx, "a@x.com", code); ok {
				atomic.AddInt32(&wins, 1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins)
}

func TestRedisStore_ServerDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client, time.Minute)
	mr.Close()

	_, err := store.Issue(context.Background(), "a@x.com")
	assert.Error(t, err)

	_, err = store.Verify(context.Background(), "a@x.com", "123456")
	assert.Error(t, err)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	defer client.Close()

	_, err = NewRedisClient(context.Background(), "not a url")
	assert.Error(t, err)
}
