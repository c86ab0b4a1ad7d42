package s3_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/atbot/internal/store"
	"github.com/edgard/atbot/internal/store/s3"
)

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string][]byte)}
}

func (f *fakeBucket) GetObject(_ context.Context, in *awss3.GetObjectInput, _ ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeBucket) PutObject(_ context.Context, in *awss3.PutObjectInput, _ ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	return &awss3.PutObjectOutput{}, nil
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	bucket := newFakeBucket()
	s := s3.NewWithClient(bucket, "profiles", "bots/", nil)

	require.NoError(t, s.Save(ctx, store.NewProfile("Bob", "a tester")))
	assert.Contains(t, bucket.objects, "bots/whois/bob.json")

	got, err := s.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "a tester", got.Description)
}

func TestLoadMissingAndCorrupt(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	bucket := newFakeBucket()
	bucket.objects["whois/dave.json"] = []byte("not json")
	s := s3.NewWithClient(bucket, "profiles", "", nil)

	_, err := s.Load(ctx, "carol")
	require.ErrorIs(t, err, store.ErrRead)
	assert.True(t, store.IsNotFound(err))

	_, err = s.Load(ctx, "dave")
	require.ErrorIs(t, err, store.ErrRead)
	assert.False(t, store.IsNotFound(err))
}

func TestSaveFailureKeepsPreviousObject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	bucket := newFakeBucket()
	s := s3.NewWithClient(bucket, "profiles", "", nil)
	require.NoError(t, s.Save(ctx, store.NewProfile("bob", "first version")))

	bucket.putErr = errors.New("access denied")
	require.ErrorIs(t, s.Save(ctx, store.NewProfile("bob", "changed")), store.ErrWrite)

	got, err := s.Load(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "first version", got.Description)
}

func TestNewRequiresBucket(t *testing.T) {
	t.Parallel()
	_, err := s3.New(context.Background(), s3.Config{}, nil)
	assert.Error(t, err)
}
