package gcs

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// ImageResolver turns catalog image references (object names in the product
// images field) into browser-usable URLs. Absolute references pass through
// untouched. When signing is possible a short-lived signed URL is produced;
// otherwise the public object URL is used.
type ImageResolver struct {
	Client *storage.Client
	Bucket string
	TTL    time.Duration
}

func NewImageResolver(client *storage.Client, bucket string) *ImageResolver {
	return &ImageResolver{Client: client, Bucket: bucket, TTL: 15 * time.Minute}
}

// Resolve maps one image reference to a URL. Best-effort: any failure falls
// back to the reference itself so a bad resolver never blanks the catalog.
func (r *ImageResolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if r == nil || r.Bucket == "" {
		return ref
	}

	if r.Client != nil {
		ttl := r.TTL
		if ttl <= 0 {
			ttl = 15 * time.Minute
		}
		url, err := r.Client.Bucket(r.Bucket).SignedURL(ref, &storage.SignedURLOptions{
			Method:  "GET",
			Expires: time.Now().Add(ttl),
		})
		if err == nil {
			return url
		}
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", r.Bucket, ref)
}
