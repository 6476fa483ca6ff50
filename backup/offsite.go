package backup

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/juju/errors"
)

// Offsite receives a finished local backup folder.
type Offsite interface {
	Upload(ctx context.Context, dir string) error
}

// ObjectPutter is the part of *s3.Client the uploader needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Offsite copies every file of a backup folder to Bucket under
// Prefix/<folder name>/<relative path>.
type S3Offsite struct {
	Client ObjectPutter
	Bucket string
	Prefix string
}

// NewS3Offsite builds a client from the default AWS credential chain.
func NewS3Offsite(ctx context.Context, region, bucket, prefix string) (*S3Offsite, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Annotate(err, "loading AWS config")
	}
	return &S3Offsite{Client: s3.NewFromConfig(cfg), Bucket: bucket, Prefix: prefix}, nil
}

// Upload walks dir and puts each regular file. It stops at the first failure.
func (o *S3Offsite) Upload(ctx context.Context, dir string) error {
	base := filepath.Base(dir)
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return errors.Trace(err)
		}
		key := path.Join(o.Prefix, base, filepath.ToSlash(rel))

		f, err := os.Open(p)
		if err != nil {
			return errors.Trace(err)
		}
		defer f.Close()

		if _, err := o.Client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(o.Bucket),
			Key:         aws.String(key),
			Body:        f,
			ContentType: aws.String(contentType(p)),
		}); err != nil {
			return errors.Annotatef(err, "uploading s3://%s/%s", o.Bucket, key)
		}
		return nil
	})
}

func contentType(name string) string {
	switch filepath.Ext(name) {
	case ".json":
		return "application/json"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
