package screenshot

import (
	"bytes"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// Mirror uploads evidence shots to an S3 bucket so outcomes can be
// reviewed away from the machine that ran the browser.
type Mirror struct {
	s3Client *s3.S3
	bucket   string
	region   string
}

// NewMirrorFromEnv builds a mirror from AWS_* environment variables.
// Returns (nil, nil) when they are unset: mirroring is strictly optional.
func NewMirrorFromEnv() (*Mirror, error) {
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	region := os.Getenv("AWS_REGION")
	bucket := os.Getenv("AWS_S3_BUCKET")

	if accessKey == "" || secretKey == "" || region == "" || bucket == "" {
		return nil, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	})
	if err != nil {
		return nil, fmt.Errorf("creating AWS session: %w", err)
	}

	return &Mirror{s3Client: s3.New(sess), bucket: bucket, region: region}, nil
}

// Upload pushes a local screenshot to the bucket and returns its URL.
func (m *Mirror) Upload(path, key string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading screenshot: %w", err)
	}

	_, err = m.s3Client.PutObject(&s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String("apply_screenshots/" + key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/apply_screenshots/%s", m.bucket, m.region, key), nil
}
