package memberservice

// Member модель участника из MemberService
type Member struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от MemberService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
