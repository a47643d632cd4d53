package storage

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CloudinaryStore uploads through Cloudinary's signed upload endpoint.
// Requests are plain form posts signed with SHA1 over the sorted
// parameters plus the API secret.
type CloudinaryStore struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
	Client    *http.Client
}

// CloudinaryFromEnv returns nil when credentials are not configured.
func CloudinaryFromEnv() *CloudinaryStore {
	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil
	}
	return &CloudinaryStore{
		CloudName: cloudName,
		APIKey:    apiKey,
		APISecret: apiSecret,
		Folder:    os.Getenv("CLOUDINARY_FOLDER"),
		Client:    &http.Client{Timeout: 30 * time.Second},
	}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (s *CloudinaryStore) Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	raw, err := io.ReadAll(src)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	publicID := uuid.NewString()
	if prefix := strings.Trim(s.Folder+"/"+folder, "/"); prefix != "" {
		publicID = prefix + "/" + publicID
	}
	timestamp := fmt.Sprintf("%d", time.Now().Unix())

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(raw))
	form.Add("api_key", s.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)

	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.APISecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	endpoint := "https://api.cloudinary.com/v1_1/" + s.CloudName + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read cloudinary response: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloudinary upload failed: status %d: %s", res.StatusCode, body)
	}

	var parsed cloudinaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse cloudinary response: %w", err)
	}
	if parsed.Error.Message != "" {
		return "", fmt.Errorf("cloudinary error: %s", parsed.Error.Message)
	}

	out := parsed.SecureURL
	if out == "" {
		out = parsed.URL
	}
	if out == "" {
		return "", fmt.Errorf("cloudinary returned no url")
	}
	return out, nil
}

// Delete destroys the asset behind a Cloudinary delivery URL.
// URL format: https://res.cloudinary.com/{cloud}/image/upload/v{n}/{public_id}.{ext}
func (s *CloudinaryStore) Delete(ctx context.Context, imageURL string) error {
	publicID, ok := publicIDFromURL(imageURL)
	if !ok {
		return fmt.Errorf("url %q is not a cloudinary asset", imageURL)
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form := url.Values{}
	form.Add("public_id", publicID)
	form.Add("api_key", s.APIKey)
	form.Add("timestamp", timestamp)
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.APISecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	endpoint := "https://api.cloudinary.com/v1_1/" + s.CloudName + "/image/destroy"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("cloudinary destroy failed: status %d: %s", res.StatusCode, body)
	}
	return nil
}

func publicIDFromURL(imageURL string) (string, bool) {
	if !strings.Contains(imageURL, "res.cloudinary.com") {
		return "", false
	}
	parts := strings.Split(imageURL, "/")
	uploadIdx := -1
	for i, p := range parts {
		if p == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx+2 >= len(parts) {
		return "", false
	}
	// skip the version segment after "upload"
	withExt := strings.Join(parts[uploadIdx+2:], "/")
	if dot := strings.LastIndex(withExt, "."); dot != -1 {
		withExt = withExt[:dot]
	}
	return withExt, withExt != ""
}
