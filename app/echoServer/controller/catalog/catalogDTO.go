package catalog

type CreateBookReq struct {
	Title       string `json:"title" validate:"required"`
	Category    string `json:"category" validate:"omitempty,oneof=S F B T O"`
	NumPages    int64  `json:"num_pages" validate:"omitempty,gt=0"`
	Price       string `json:"price" validate:"required"`
	PublisherID int64  `json:"publisher_id" validate:"required,gt=0"`
	Description string `json:"description"`
}

type CreatePublisherReq struct {
	Name    string `json:"name" validate:"required"`
	Website string `json:"website" validate:"omitempty,url"`
	City    string `json:"city"`
	Country string `json:"country"`
}

type SearchReq struct {
	Name     string `json:"name"`
	Category string `json:"category" validate:"omitempty,oneof=S F B T O"`
	MaxPrice int64  `json:"max_price" validate:"required,gte=1"`
}
