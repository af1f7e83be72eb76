package fsxs3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/Abraxas-365/resumegpt/pkg/fsx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memS3 struct {
	objects map[string][]byte
}

func newMemS3() *memS3 { return &memS3{objects: map[string][]byte{}} }

func (m *memS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (m *memS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (m *memS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(m.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (m *memS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := m.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]; !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{}, nil
}

func TestS3FileSystem_KeysArePrefixed(t *testing.T) {
	ctx := context.Background()
	mem := newMemS3()
	sfs := NewS3FileSystem(mem, "bucket", "/uploads/")

	p := sfs.Join("resumes", "s1", "cv.pdf")
	require.NoError(t, sfs.WriteFileStream(ctx, p, strings.NewReader("pdf")))

	_, ok := mem.objects["bucket/uploads/resumes/s1/cv.pdf"]
	assert.True(t, ok)

	exists, err := sfs.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := sfs.ReadFile(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "pdf", string(data))
}

func TestS3FileSystem_Missing(t *testing.T) {
	ctx := context.Background()
	sfs := NewS3FileSystem(newMemS3(), "bucket", "")

	exists, err := sfs.Exists(ctx, "nope.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = sfs.ReadFile(ctx, "nope.txt")
	assert.True(t, errors.Is(err, fsx.ErrNotExist))

	require.NoError(t, sfs.WriteFile(ctx, "a.txt", []byte("a")))
	require.NoError(t, sfs.DeleteFile(ctx, "a.txt"))
	exists, _ = sfs.Exists(ctx, "a.txt")
	assert.False(t, exists)
}
