package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/nutrichef/nutrichef/backend/config"
)

var ErrStorageDisabled = errors.New("image storage is not configured")

// ImageService stores uploaded recipe photos in S3
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance. A nil s3Config is
// allowed; uploads then fail with ErrStorageDisabled.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadRecipeImage uploads image data to S3 and returns the public URL
func (s *ImageService) UploadRecipeImage(ctx context.Context, imageData []byte, contentType string) (string, error) {
	if s.s3Config == nil {
		return "", ErrStorageDisabled
	}

	ext := ".jpg"
	if contentType == "image/png" {
		ext = ".png"
	}
	fileName := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), ext)

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("uploaded recipe image to %s", publicURL)

	return publicURL, nil
}
