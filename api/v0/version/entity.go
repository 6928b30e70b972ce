package version

// GetVersionRequest is a request to retrieve the version
// of the component.
type GetVersionRequest struct{}

// GetVersionResponse is the response to the version request
type GetVersionResponse struct {
	Version int    `json:"version"`
	Backend string `json:"backend"`
}
