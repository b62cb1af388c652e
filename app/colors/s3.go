package colors

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Client defines the S3 operations used by S3Store.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// S3Store keeps each colour as a JSON object named <prefix><slug>.json.
type S3Store struct {
	client S3Client
	bucket string
	prefix string
}

var _ Store = (*S3Store)(nil)

// NewS3Store creates a store over client. A non-empty prefix is treated as
// a directory.
func NewS3Store(client S3Client, bucket, prefix string) *S3Store {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// OpenS3 builds a client from the default AWS configuration chain
// (environment, shared config, instance role). AWS_ENDPOINT_URL selects an
// S3-compatible service.
func OpenS3(ctx context.Context, bucket, prefix string) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = o.BaseEndpoint != nil
	})
	return NewS3Store(client, bucket, prefix), nil
}

func (s *S3Store) key(slug string) string {
	return s.prefix + slug + ".json"
}

func (s *S3Store) List(ctx context.Context) ([]Color, error) {
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	var out []Color
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list colors: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if path.Ext(key) != ".json" || strings.Contains(strings.TrimPrefix(key, s.prefix), "/") {
				continue
			}
			c, err := s.get(ctx, key)
			if errors.Is(err, ErrNotFound) {
				continue
			}
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (s *S3Store) Get(ctx context.Context, slug string) (Color, error) {
	return s.get(ctx, s.key(slug))
}

func (s *S3Store) get(ctx context.Context, key string) (Color, error) {
	obj, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isMissing(err) {
			return Color{}, ErrNotFound
		}
		return Color{}, fmt.Errorf("get %s: %w", key, err)
	}
	defer obj.Body.Close()

	var c Color
	if err := json.NewDecoder(obj.Body).Decode(&c); err != nil {
		return Color{}, fmt.Errorf("decode %s: %w", key, err)
	}
	return c, nil
}

// Create writes the object only if it does not exist yet.
func (s *S3Store) Create(ctx context.Context, c Color) error {
	body, err := json.Marshal(c)
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(c.Slug)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		if errorCode(err) == "PreconditionFailed" {
			return ErrExists
		}
		return fmt.Errorf("put %s: %w", c.Slug, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, slug string) error {
	key := aws.String(s.key(slug))
	if _, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: key}); err != nil {
		if isMissing(err) {
			return ErrNotFound
		}
		return fmt.Errorf("head %s: %w", slug, err)
	}

	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{Bucket: aws.String(s.bucket), Key: key}); err != nil {
		return fmt.Errorf("delete %s: %w", slug, err)
	}
	return nil
}

func isMissing(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	switch errorCode(err) {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

func errorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
