package response

import (
	"remindme/internal/core/domain/user"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	Name      *string   `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	if du.Name.IsPresent {
		name := du.Name.Value
		u.Name = &name
	}
	u.CreatedAt = du.CreatedAt
}
