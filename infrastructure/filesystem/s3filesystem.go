package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Archive stores files under Prefix in Bucket. Names are relative to Prefix.
type S3Archive struct {
	Bucket string
	Prefix string
	client *s3.Client
}

func NewS3Archive(ctx context.Context, bucket, prefix string) (*S3Archive, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &S3Archive{
		Bucket: bucket,
		Prefix: strings.Trim(prefix, "/"),
		client: s3.NewFromConfig(cfg),
	}, nil
}

func (a *S3Archive) key(name string) string {
	if a.Prefix == "" {
		return name
	}
	return path.Join(a.Prefix, name)
}

// Put uploads data as name and returns the full object key.
func (a *S3Archive) Put(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	key := a.key(name)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s to bucket %s: %w", key, a.Bucket, err)
	}
	return key, nil
}

// Get copies the object stored as name into outStream.
func (a *S3Archive) Get(ctx context.Context, name string, outStream io.Writer) error {
	key := a.key(name)
	resp, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to get object %s from bucket %s: %w", key, a.Bucket, err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(outStream, resp.Body); err != nil {
		return fmt.Errorf("failed to copy object %s from bucket %s: %w", key, a.Bucket, err)
	}
	return nil
}

// List returns the names stored under Prefix.
func (a *S3Archive) List(ctx context.Context) ([]string, error) {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(a.Bucket)}
	if a.Prefix != "" {
		input.Prefix = aws.String(a.Prefix + "/")
	}

	var names []string
	paginator := s3.NewListObjectsV2Paginator(a.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list objects in bucket %s: %w", a.Bucket, err)
		}

		for _, obj := range page.Contents {
			if obj.Key != nil {
				names = append(names, strings.TrimPrefix(*obj.Key, aws.ToString(input.Prefix)))
			}
		}
	}

	return names, nil
}
