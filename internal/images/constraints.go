package images

// Upload constraints. These mirror the checks the web client performs before
// submitting, so callers bypassing the client get a 400 instead of spending
// an API call on an image that was never acceptable.

// allowedContentTypes lists the MIME types accepted by the processing endpoint.
var allowedContentTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// AllowedContentType reports whether the declared MIME type is accepted.
func AllowedContentType(contentType string) bool {
	return allowedContentTypes[contentType]
}
