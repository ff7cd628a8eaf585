package common

// PublishedDirName is the directory a document is moved into once it has
// been uploaded.
const PublishedDirName = "published"

// Multipart field names expected by the publish endpoint.
const (
	FormFieldFileName = "filename"
	FormFieldFile     = "file"
)

// AuthorizationHeaderName carries the Basic credential on publish requests.
const AuthorizationHeaderName = "Authorization"
