package domain

// Roles a staff user may hold.
var Roles = []string{"Owner", "Manager", "Cashier", "Kitchen"}

func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

type User struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	FullName string `json:"fullName" gorm:"column:full_name;not null"`
	Surname  string `json:"surname"`
	Role     string `json:"role" gorm:"not null"`
	Email    string `json:"email" gorm:"not null;uniqueIndex"`
	Phone    string `json:"phone"`
	Code     Code   `json:"code" gorm:"type:varchar(24);index"`
}
