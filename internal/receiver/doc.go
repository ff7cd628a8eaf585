// Package receiver is a small development endpoint for the publisher.
//
// It accepts the publish request exactly as the CLI sends it: a POST with
// HTTP Basic credentials and a multipart/form-data body holding a "filename"
// text field and a "file" part. Accepted documents are stored under
// documents/YYYY/MM/DD/<uuid>/<filename> in a local directory (go-billy) or
// an S3-compatible bucket (aws-sdk-go-v2).
//
// Routes:
//
//	POST /publish   store one document, 201 with a JSON envelope
//	GET  /health    liveness probe
//
// Configuration comes from the environment, optionally seeded from .env;
// see LoadConfig.
package receiver
