package member

type EnrollReq struct {
	Status    int    `json:"status" validate:"omitempty,oneof=1 2 3"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Province  string `json:"province" validate:"omitempty,len=2"`
	AutoRenew *bool  `json:"auto_renew"`
}
