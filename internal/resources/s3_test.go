package resources

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// fakeS3 serves objects from a map, the way the store sees a bucket.
type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "no such key"}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

func (f *fakeS3) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	if _, ok := f.objects[*in.Key]; !ok {
		return nil, &smithy.GenericAPIError{Code: "NotFound", Message: "not found"}
	}
	return &s3.HeadObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var contents []s3types.Object
	for key, data := range f.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			contents = append(contents, s3types.Object{
				Key:  aws.String(key),
				Size: aws.Int64(int64(len(data))),
			})
		}
	}
	return &s3.ListObjectsV2Output{Contents: contents}, nil
}

func newFakeS3Store(objects map[string][]byte) *S3Store {
	return NewS3Store(&fakeS3{objects: objects}, "lectern-test", "sem-1/")
}

func TestS3StoreOpen(t *testing.T) {
	store := newFakeS3Store(map[string][]byte{
		"sem-1/cfp/01.pdf": []byte("pdf bytes"),
	})

	res, err := store.Open(context.Background(), "cfp/01.pdf")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer res.Close()

	body, _ := io.ReadAll(res.Body)
	if string(body) != "pdf bytes" {
		t.Errorf("body = %q", body)
	}
	if res.ContentType != "application/pdf" {
		t.Errorf("content type = %q, want pdf fallback from extension", res.ContentType)
	}
}

func TestS3StoreOpenMissing(t *testing.T) {
	store := newFakeS3Store(nil)
	if _, err := store.Open(context.Background(), "cfp/none.pdf"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Open(missing) error = %v, want ErrNotFound", err)
	}
}

func TestS3StoreExists(t *testing.T) {
	store := newFakeS3Store(map[string][]byte{"sem-1/cfp/01.pdf": []byte("x")})

	ok, err := store.Exists(context.Background(), "cfp/01.pdf")
	if err != nil || !ok {
		t.Errorf("Exists(present) = (%v, %v), want true", ok, err)
	}
	ok, err = store.Exists(context.Background(), "cfp/02.pdf")
	if err != nil || ok {
		t.Errorf("Exists(absent) = (%v, %v), want false", ok, err)
	}
}

func TestS3StoreListStripsPrefix(t *testing.T) {
	store := newFakeS3Store(map[string][]byte{
		"sem-1/cfp/01.pdf": []byte("a"),
		"sem-1/wd/01.pdf":  []byte("b"),
	})

	infos, err := store.List(context.Background(), "cfp")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("List() = %v, want one entry", infos)
	}
	if infos[0].Key != "cfp/01.pdf" {
		t.Errorf("key = %q, want store prefix stripped", infos[0].Key)
	}
}

func TestS3StoreRejectsEscapes(t *testing.T) {
	store := newFakeS3Store(nil)
	if _, err := store.Open(context.Background(), "../secrets"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Open(escape) error = %v, want ErrInvalidKey", err)
	}
}
