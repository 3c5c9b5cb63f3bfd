package request

type DeliveryInfoPayload struct {
	Contact             string `json:"contact" validate:"omitempty,max=100"`
	Country             string `json:"country" validate:"omitempty,max=60"`
	FirstName           string `json:"firstName" validate:"omitempty,max=50"`
	LastName            string `json:"lastName" validate:"omitempty,max=50"`
	Address             string `json:"address" validate:"omitempty,max=200"`
	Apartment           string `json:"apartment" validate:"omitempty,max=100"`
	City                string `json:"city" validate:"omitempty,max=60"`
	State               string `json:"state" validate:"omitempty,max=60"`
	PinCode             string `json:"pinCode" validate:"omitempty,max=10"`
	Phone               string `json:"phone" validate:"omitempty,max=15"`
	SaveInfoForNextTime *bool  `json:"saveInfoForNextTime,omitempty"`
}

type UpdateDeliveryInfoRequest struct {
	DeliveryInfo DeliveryInfoPayload `json:"deliveryInfo" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  string  `json:"name" validate:"omitempty,min=3,max=50"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,len=10"`
}
