package domain

import "time"

// User описывает зарегистрированного пользователя маркетплейса.
// Аутентификация делегирована внешнему шлюзу, здесь хранится только профиль.
type User struct {
	ID        int64
	Username  string
	FirstName string
	IsAdmin   bool
	CreatedAt time.Time
}

// Principal — аутентифицированный субъект текущего запроса.
// Передается явным аргументом в каждую операцию usecase-слоя.
// IsAdmin открывает административные операции: управление категориями
// и удаление чужих учетных записей.
type Principal struct {
	UserID    int64
	Username  string
	FirstName string
	IsAdmin   bool
}

func NewPrincipal(user *User) Principal {
	return Principal{
		UserID:    user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		IsAdmin:   user.IsAdmin,
	}
}
