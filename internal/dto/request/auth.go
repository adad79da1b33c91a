package request

// RegisterRequest: any whitespace-free password is acceptable as long as
// the confirmation matches; the only username rule is alphanumeric.
type RegisterRequest struct {
	Username     string `json:"username" validate:"required,alphanum"`
	Password     string `json:"password" validate:"required"`
	Confirmation string `json:"confirmation" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
