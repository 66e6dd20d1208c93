package imagestore

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

type S3Store struct {
	bucket    string
	publicURL string
	uploader  *s3manager.Uploader
	svc       *s3.S3
}

// NewS3Store uploads into bucket. publicURL is the prefix the objects are
// served from (a CDN, for example); when empty the bucket's virtual-hosted
// URL is used.
func NewS3Store(bucket, region, publicURL string) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "aws session")
	}

	if publicURL == "" {
		publicURL = "https://" + bucket + ".s3." + region + ".amazonaws.com"
	}

	svc := s3.New(sess)

	return &S3Store{
		bucket:    bucket,
		publicURL: strings.TrimSuffix(publicURL, "/") + "/",
		uploader:  s3manager.NewUploaderWithClient(svc),
		svc:       svc,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, fileName, contentType string, body io.Reader) (string, error) {
	key := NewKey(fileName)

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:         aws.String("public-read"),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	if err != nil {
		return "", errors.Wrapf(err, "upload %s", key)
	}

	return s.publicURL + key, nil
}

func (s *S3Store) Delete(ctx context.Context, url string) error {
	key, ok := s.keyFromURL(url)
	if !ok {
		return nil
	}

	_, err := s.svc.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})

	return errors.Wrapf(err, "delete %s", key)
}

func (s *S3Store) keyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, s.publicURL) {
		return "", false
	}
	key := strings.TrimPrefix(url, s.publicURL)

	return key, key != ""
}
