package handlers

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type adminResponse struct {
	Admin bool `json:"admin"`
}

type deliveryManResponse struct {
	DeliveryMen bool `json:"deliveryMen"`
}
