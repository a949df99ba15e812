package profileservice

// Profile профиль пользователя из сервиса профилей
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Email string `json:"email"`
	Phone string `json:"telefone"`
	Role  string `json:"role,omitempty"`
}
