package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"golang.org/x/crypto/acme/autocert"

	"github.com/dmitrymomot/sitecert/core/plugin"
)

const (
	S3Name = "s3"

	OptionS3Bucket         = "S3Bucket"
	OptionS3Region         = "S3Region"
	OptionS3Prefix         = "S3Prefix"
	OptionS3Endpoint       = "S3Endpoint"
	OptionS3ForcePathStyle = "S3ForcePathStyle"
)

// S3Client is the subset of the S3 API used by S3Cache.
type S3Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3aws.GetObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

// S3Config configures the s3 store. Credentials are not part of the
// persisted config; they come from the AWS default chain or WithStaticCredentials.
type S3Config struct {
	Bucket         string `json:"bucket"`
	Region         string `json:"region"`
	Prefix         string `json:"prefix,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"` // MinIO, Wasabi and other S3-compatible services
	ForcePathStyle bool   `json:"force_path_style,omitempty"`
}

func (S3Config) PluginName() string { return S3Name }

type S3Option func(*s3Options)

type s3Options struct {
	client        S3Client
	configOptions []func(*config.LoadOptions) error
}

// WithS3Client sets a pre-configured client. Used by tests.
func WithS3Client(client S3Client) S3Option {
	return func(o *s3Options) { o.client = client }
}

// WithStaticCredentials uses a fixed access key instead of the default chain.
func WithStaticCredentials(accessKeyID, secretKey string) S3Option {
	return func(o *s3Options) {
		if accessKeyID == "" || secretKey == "" {
			return
		}
		o.configOptions = append(o.configOptions, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKeyID, secretKey, ""),
		))
	}
}

var _ Store = (*S3Cache)(nil)

// S3Cache stores certificate material as objects below an optional prefix.
type S3Cache struct {
	client S3Client
	bucket string
	prefix string
}

func NewS3Cache(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Cache, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}

	o := &s3Options{}
	for _, opt := range opts {
		opt(o)
	}

	client := o.client
	if client == nil {
		awsCfg, err := config.LoadDefaultConfig(ctx, append(
			[]func(*config.LoadOptions) error{config.WithRegion(cfg.Region)},
			o.configOptions...,
		)...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client = s3aws.NewFromConfig(awsCfg, func(so *s3aws.Options) {
			if cfg.Endpoint != "" {
				so.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			so.UsePathStyle = cfg.ForcePathStyle
		})
	}

	return &S3Cache{
		client: client,
		bucket: cfg.Bucket,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

func (c *S3Cache) key(name string) string {
	if c.prefix == "" {
		return name
	}
	return path.Join(c.prefix, name)
}

// Get returns autocert.ErrCacheMiss when the object does not exist.
func (c *S3Cache) Get(ctx context.Context, name string) ([]byte, error) {
	out, err := c.client.GetObject(ctx, &s3aws.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key(name)),
	})
	if err != nil {
		return nil, classifyS3Error(err, "get")
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return data, nil
}

func (c *S3Cache) Put(ctx context.Context, name string, data []byte) error {
	_, err := c.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(c.key(name)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/x-pem-file"),
	})
	return classifyS3Error(err, "put")
}

// Delete succeeds for missing objects, as S3 does.
func (c *S3Cache) Delete(ctx context.Context, name string) error {
	_, err := c.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(c.key(name)),
	})
	return classifyS3Error(err, "delete")
}

// classifyS3Error maps S3 failures onto the store errors.
func classifyS3Error(err error, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s operation", ErrOperationTimeout, operation)
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation", ErrOperationCanceled, operation)
	}

	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return autocert.ErrCacheMiss
	}
	var nsb *types.NoSuchBucket
	if errors.As(err, &nsb) {
		return ErrBucketNotFound
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch code := apiErr.ErrorCode(); code {
		case "NoSuchKey", "NotFound":
			return autocert.ErrCacheMiss
		case "NoSuchBucket":
			return ErrBucketNotFound
		case "AccessDenied":
			return fmt.Errorf("%w: %s operation", ErrAccessDenied, operation)
		case "SlowDown", "ServiceUnavailable", "RequestTimeout":
			return fmt.Errorf("%w: %s operation", ErrServiceUnavailable, operation)
		default:
			return fmt.Errorf("%s operation failed (code: %s): %w", operation, code, err)
		}
	}

	return fmt.Errorf("%s operation failed: %w", operation, err)
}

type s3Factory struct{}

// S3 returns the s3 store factory.
func S3() plugin.Factory { return s3Factory{} }

func (s3Factory) Name() string        { return S3Name }
func (s3Factory) Description() string { return "Save certificates to an S3 compatible bucket" }
func (s3Factory) Match(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), S3Name)
}

func (s3Factory) Default(opts plugin.OptionsProvider) (plugin.Config, error) {
	bucket, err := opts.RequiredString(OptionS3Bucket)
	if err != nil {
		return nil, err
	}
	region, err := opts.RequiredString(OptionS3Region)
	if err != nil {
		return nil, err
	}
	cfg := S3Config{
		Bucket:         bucket,
		Region:         region,
		ForcePathStyle: opts.Bool(OptionS3ForcePathStyle),
	}
	cfg.Prefix, _ = opts.String(OptionS3Prefix)
	cfg.Endpoint, _ = opts.String(OptionS3Endpoint)
	return cfg, nil
}

func (f s3Factory) Acquire(ctx context.Context, opts plugin.OptionsProvider, in plugin.Input, _ plugin.RunLevel) (plugin.Config, error) {
	if cfg, err := f.Default(opts); err == nil {
		return cfg, nil
	}

	var cfg S3Config
	for _, q := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter the S3 bucket name", &cfg.Bucket},
		{"Enter the S3 region", &cfg.Region},
		{"Enter a key prefix, or press enter for none", &cfg.Prefix},
	} {
		v, err := in.PromptString(ctx, q.prompt)
		if err != nil {
			return nil, err
		}
		*q.dst = strings.TrimSpace(v)
	}
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, fmt.Errorf("%w: bucket and region are required", ErrInvalidConfig)
	}
	cfg.Endpoint, _ = opts.String(OptionS3Endpoint)
	cfg.ForcePathStyle = opts.Bool(OptionS3ForcePathStyle)
	return cfg, nil
}
