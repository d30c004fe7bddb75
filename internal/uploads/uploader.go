package uploads

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/dutchcoders/go-clamd"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"jobportal/internal/config"
)

// ResourceType selects the media store's handling mode. It determines the
// path segment of the served URL: <base>/<resource>/upload/<key>.
type ResourceType string

const (
	// ResourceAuto detects image vs raw from the file's content type.
	ResourceAuto ResourceType = "auto"
	// ResourceImage serves the object under the image-optimized path.
	ResourceImage ResourceType = "image"
	// ResourceRaw serves the object untouched; required for PDFs so the
	// served URL carries the document path segment.
	ResourceRaw ResourceType = "raw"
)

// ErrMaliciousFile is returned when the virus scanner rejects an upload.
var ErrMaliciousFile = errors.New("malicious file detected")

// Options configures a single upload.
type Options struct {
	ResourceType ResourceType
	// Folder is an optional logical prefix for the object key.
	Folder string
}

// Service uploads files to the S3-compatible media store and returns stable
// public URLs. When a clamd address is configured, every upload is scanned
// before it is stored.
type Service struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	clamdAddr     string
}

// NewService initializes the media store client and ensures the bucket exists.
func NewService(cfg config.MediaConfig) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init media client: %w", err)
	}

	parsed, err := url.Parse(cfg.PublicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse media public base url: %w", err)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid media public base url, host missing")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if !cfg.AutoCreateBucket {
			return nil, fmt.Errorf("bucket %q does not exist (auto create disabled)", cfg.Bucket)
		}
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &Service{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		clamdAddr:     cfg.ClamdAddr,
	}, nil
}

// UploadFile scans (if configured) and stores a multipart upload, returning
// the publicly retrievable URL of the stored object.
func (s *Service) UploadFile(ctx context.Context, file *multipart.FileHeader, opts Options) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	resource := resolveResourceType(opts.ResourceType, contentType)

	if s.clamdAddr != "" {
		if err := s.scanFile(file); err != nil {
			return "", err
		}
	}

	reader, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", file.Filename, err)
	}
	defer reader.Close()

	objectKey := buildObjectKey(opts.Folder, file.Filename)
	putOpts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, file.Size, putOpts); err != nil {
		return "", fmt.Errorf("put object %q: %w", objectKey, err)
	}

	return s.publicURL(resource, objectKey), nil
}

// scanFile streams the upload through clamd and rejects anything flagged.
func (s *Service) scanFile(file *multipart.FileHeader) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload %q: %w", file.Filename, err)
	}

	clamdClient := clamd.NewClamd(s.clamdAddr)
	abortChan := make(chan bool)
	scanChan, err := clamdClient.ScanStream(reader, abortChan)
	reader.Close()
	if err != nil {
		return fmt.Errorf("scan upload %q: %w", file.Filename, err)
	}
	defer close(abortChan)

	for result := range scanChan {
		if result.Status != clamd.RES_OK {
			return ErrMaliciousFile
		}
	}
	return nil
}

func (s *Service) publicURL(resource ResourceType, objectKey string) string {
	return s.publicBaseURL + "/" + string(resource) + "/upload/" + objectKey
}

func resolveResourceType(requested ResourceType, contentType string) ResourceType {
	switch requested {
	case ResourceImage, ResourceRaw:
		return requested
	default:
		if strings.HasPrefix(contentType, "image/") {
			return ResourceImage
		}
		return ResourceRaw
	}
}

func buildObjectKey(folder, filename string) string {
	key := uuid.NewString() + strings.ToLower(path.Ext(filename))
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return key
	}
	return folder + "/" + key
}
