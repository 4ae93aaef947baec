// Package storage keeps document-proof uploads (scans of translated or
// apostilled documents) in S3.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"

	"vistonomade/internal/utils"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ProofStorage struct {
	client *s3.Client
	bucket string
}

func NewProofStorage(client *s3.Client, bucket string) *ProofStorage {
	return &ProofStorage{client: client, bucket: bucket}
}

// UploadProof stores one proof file under the owning user and checklist item
// and returns the object key.
func (s *ProofStorage) UploadProof(ctx context.Context, userID, itemID string, file multipart.File, contentType string) (string, error) {
	key := fmt.Sprintf("proofs/%s/%s/%s", userID, itemID, utils.NanoIDSize(16))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload proof %s: %w", key, err)
	}

	return key, nil
}

// DeleteProof removes an uploaded proof.
func (s *ProofStorage) DeleteProof(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete proof %s: %w", key, err)
	}

	return nil
}
