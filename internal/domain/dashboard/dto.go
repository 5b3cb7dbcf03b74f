package dashboard

// ActivitiesResponse is the payload of GET /api/dashboard/activities
type ActivitiesResponse struct {
	Activities  []Activity `json:"activities"`
	LastUpdated *string    `json:"last_updated"`
}

// ActivitiesRequest carries the feed length.
type ActivitiesRequest struct {
	Limit int
}
