package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/platefork/backend/config"
)

// ImageService stores uploaded recipe images in S3.
type ImageService struct {
	s3Config *config.S3Config
}

func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// Enabled reports whether image storage is configured.
func (s *ImageService) Enabled() bool {
	return s != nil && s.s3Config != nil
}

var allowedImageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// UploadRecipeImage stores the file under a fresh key for the recipe and
// returns the public URL.
func (s *ImageService) UploadRecipeImage(ctx context.Context, recipeID uint, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	contentType, ok := allowedImageTypes[ext]
	if !ok {
		return "", &ValidationError{Field: "image", Message: fmt.Sprintf("unsupported image type %q", ext)}
	}

	key := fmt.Sprintf("recipes/%d/%s%s", recipeID, uuid.New().String(), ext)
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	url := s.s3Config.ObjectURL(key)
	log.Printf("Uploaded recipe %d image to %s", recipeID, key)
	return url, nil
}
