package media

import (
	"context"
	"strings"
)

// IsHostedURL reports whether an image entry is already hosted and must
// be passed through unchanged instead of uploaded.
func IsHostedURL(entry string) bool {
	return strings.HasPrefix(entry, "http://") || strings.HasPrefix(entry, "https://")
}

// ResolveImages turns a mixed list of hosted URLs and inline payloads
// into a list of hosted URLs, preserving order. Inline payloads go
// through the gateway; hosted URLs pass through untouched.
//
// If any upload fails, every upload already finished for this call is
// destroyed (best-effort) before the error is returned, so a failed
// batch leaves no residual assets behind. On success the returned
// rollback destroys this call's uploads; callers invoke it when the
// database write that would reference the URLs fails after the fact.
func ResolveImages(ctx context.Context, up Uploader, entries []string, folder string) ([]string, func(), error) {
	urls := make([]string, 0, len(entries))
	uploaded := make([]string, 0, len(entries))

	undo := func() {
		for _, publicID := range uploaded {
			// Best-effort cleanup, failures are swallowed.
			_ = up.Destroy(ctx, publicID)
		}
	}

	for _, entry := range entries {
		if IsHostedURL(entry) {
			urls = append(urls, entry)
			continue
		}
		result, err := up.Upload(ctx, entry, folder)
		if err != nil {
			undo()
			return nil, nil, err
		}
		urls = append(urls, result.URL)
		uploaded = append(uploaded, result.PublicID)
	}

	return urls, undo, nil
}
