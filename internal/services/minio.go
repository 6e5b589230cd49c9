package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"
	"path"

	"vitrine_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadAvatar pousse l'avatar d'un utilisateur dans MinIO et renvoie son URL.
// L'objet est nommé d'après l'utilisateur : un nouvel upload remplace l'ancien.
func UploadAvatar(ctx context.Context, userID string, file *multipart.FileHeader) (string, error) {
	if database.MinIO == nil {
		return "", fmt.Errorf("MinIO non initialisé")
	}

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "avatars"
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	objectName := userID + path.Ext(file.Filename)
	_, err = database.MinIO.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if os.Getenv("MINIO_USE_SSL") == "true" {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, os.Getenv("MINIO_ENDPOINT"), bucket, objectName)
	return url, nil
}
