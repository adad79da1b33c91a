package request

type CreateReviewRequest struct {
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Description string `json:"description" validate:"required,max=500"`
}
