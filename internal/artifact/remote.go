package artifact

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/querido/internal/errors"
)

// ArchiveDestination names the remote object store location a generated
// artifact bundle is uploaded to after a compile.
type ArchiveDestination struct {
	Bucket string
	Prefix string
}

// Archiver uploads a tarball of a generated-artifact directory to S3.
//
// Example usage:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	archiver := artifact.NewArchiver(s3.NewFromConfig(cfg), artifact.ArchiveDestination{
//	    Bucket: "my-app-artifacts",
//	    Prefix: "compiles/",
//	})
//	key, err := archiver.Upload(ctx, outputDir)
type Archiver struct {
	client *s3.Client
	dest   ArchiveDestination
}

// NewArchiver creates an Archiver bound to an S3 client and destination.
func NewArchiver(client *s3.Client, dest ArchiveDestination) *Archiver {
	return &Archiver{client: client, dest: dest}
}

// Upload tars and gzips every file in dir and uploads it as a single
// object, keyed by the current time so successive compiles don't collide.
// It returns the uploaded object's key.
func (a *Archiver) Upload(ctx context.Context, dir string) (string, error) {
	archive, err := tarGzip(dir)
	if err != nil {
		return "", errors.New("Q301").Wrap(err)
	}

	key := a.dest.Prefix + archiveName()

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.dest.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(archive),
		ContentType: aws.String("application/gzip"),
	})
	if err != nil {
		return "", errors.New("Q301").
			WithDetail("could not upload archive to s3://" + a.dest.Bucket + "/" + key + ": " + err.Error())
	}

	return key, nil
}

func tarGzip(dir string) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		header := &tar.Header{
			Name:    rel,
			Size:    int64(len(content)),
			Mode:    0644,
			ModTime: info.ModTime(),
		}
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		_, err = tw.Write(content)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := tw.Close(); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func archiveName() string {
	return "querido-" + time.Now().UTC().Format("20060102-150405") + ".tar.gz"
}
