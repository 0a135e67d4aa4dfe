package model

// ip-api.com status discriminator values.
const (
	IPAPIStatusSuccess = "success"
	IPAPIStatusFail    = "fail"
)

// IPAPIResponse is the payload of the ip-api.com JSON endpoint.
type IPAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Query   string  `json:"query"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}
