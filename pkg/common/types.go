package common

type StorageMode string

const (
	StorageModeLocal StorageMode = "local"
	StorageModeS3    StorageMode = "s3"
)

// S3StorageInfo describes the remote location of a PNG object.
type S3StorageInfo struct {
	Bucket         string
	Region         string
	Key            string
	Endpoint       string
	ForcePathStyle bool
}

type S3Credentials struct {
	AccessKey string
	SecretKey string
}
