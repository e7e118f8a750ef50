package config

import "os"

type Config struct {
	Port                    string
	Env                     string
	FirebaseCredentialsPath string
	PostgresConnStr         string
	MongoURI                string
	JWTSecret               string

	UploadUseS3    bool
	UploadS3Bucket string
	UploadRegion   string
	UploadLocalDir string
	UploadBaseURL  string
}

func Load() *Config {
	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		PostgresConnStr:         getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:                getEnv("MONGO_URI", ""),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),

		UploadUseS3:    getEnv("UPLOAD_USE_S3", "") == "true",
		UploadS3Bucket: getEnv("UPLOAD_S3_BUCKET", ""),
		UploadRegion:   getEnv("AWS_REGION", "us-east-1"),
		UploadLocalDir: getEnv("UPLOAD_LOCAL_DIR", "./uploads"),
		UploadBaseURL:  getEnv("UPLOAD_BASE_URL", "http://localhost:8080"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
