// Package publish implements the publish pipeline: authenticate, upload a
// document as multipart/form-data, then move it into a sibling "published"
// folder.
//
// Every run is independent. Steps run strictly in order and the first
// failure ends the run; relocation is only attempted after the upload
// succeeded. A run reports exactly one outcome through its Notifier.
//
// If the upload succeeds but relocation fails, the remote copy stays
// published while the local file remains where it was. Publishing the same
// file again is the recovery path.
package publish
