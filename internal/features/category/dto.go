package category

// Requests

type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,min=2,max=50,noAllRepeatingChars"`
	Image string `json:"image" validate:"omitempty,url"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=2,max=50,noAllRepeatingChars"`
	Image *string `json:"image" validate:"omitempty,url"`
}
