package calendar

type StatusResponse struct {
	Connected bool   `json:"connected"`
	Expired   bool   `json:"expired"`
	Email     string `json:"email,omitempty"`
}

type ConnectResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}
